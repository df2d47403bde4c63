package api

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/diwise/map-items/internal/pkg/presentation/api/auth"
	"github.com/diwise/map-items/pkg/mapitems"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel/trace"
)

const (
	TraceAttributeItemType string = "map-items.type"
)

func RegisterHandlers(ctx context.Context, r chi.Router, policies io.Reader, registry *mapitems.Registry) error {

	authenticator, err := auth.NewAuthenticator(ctx, policies)
	if err != nil {
		return fmt.Errorf("failed to create api authenticator: %w", err)
	}

	if registry == nil {
		registry = mapitems.DefaultRegistry()
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(Logger(logging.GetFromContext(ctx)))

		r.Route("/map-items", func(r chi.Router) {
			r.Get("/clean/{kind}", NewCleanItemHandler(registry, authenticator))

			r.Group(func(r chi.Router) {
				r.Use(RequiredContentTypes([]string{"application/json"}))

				r.Post("/form", NewFormHandler(registry, authenticator))
				r.Post("/fields", NewFieldsHandler(registry, authenticator))
				r.Post("/features", NewFeaturesHandler(registry, authenticator))
			})
		})
	})

	r.Handle("/metrics", promhttp.Handler())

	return nil
}

func Logger(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			_, ctx, _ = o11y.AddTraceIDToLoggerAndStoreInContext(
				trace.SpanFromContext(ctx),
				logger,
				ctx)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func RequiredContentTypes(validTypes []string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			contentType := r.Header.Get("Content-Type")
			isValidContentType := true

			if len(contentType) > 0 {
				isValidContentType = false

				for _, t := range validTypes {
					if strings.HasPrefix(contentType, t) {
						isValidContentType = true
						break
					}
				}
			}

			if isValidContentType {
				next.ServeHTTP(w, r)
			} else {
				http.Error(w, "unsupported media type", http.StatusUnsupportedMediaType)
			}
		})
	}
}
