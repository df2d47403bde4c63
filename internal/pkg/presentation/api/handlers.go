package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/diwise/map-items/internal/pkg/presentation/api/auth"
	apierrors "github.com/diwise/map-items/internal/pkg/presentation/api/errors"
	"github.com/diwise/map-items/pkg/form"
	"github.com/diwise/map-items/pkg/mapitems"
	"github.com/diwise/map-items/pkg/model"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/tracing"
	"github.com/go-chi/chi/v5"
	"github.com/gorilla/schema"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
)

var tracer = otel.Tracer("map-items/api")

var errInvalidRequest = errors.New("invalid request")

var decoder = schema.NewDecoder()

func init() {
	decoder.IgnoreUnknownKeys(true)
}

type featuresQuery struct {
	Type string `schema:"type"`
}

// NewFormHandler converts a map item payload into the multipart form the map
// detail endpoint expects.
func NewFormHandler(registry *mapitems.Registry, authenticator auth.Enticator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var err error

		ctx, span := tracer.Start(r.Context(), "map-item-form")
		defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

		_, ctx, log := o11y.AddTraceIDToLoggerAndStoreInContext(span, logging.GetFromContext(ctx), ctx)

		mi, err := decodeMapItem(r, registry)
		if err != nil {
			reportError(w, "form", err)
			return
		}

		labelItemType(r, mi)

		err = authenticator.CheckAccess(ctx, r, itemTypes(mi))
		if err != nil {
			reportError(w, "form", err)
			return
		}

		fields, err := mi.APIResource()
		if err != nil {
			reportError(w, "form", err)
			return
		}

		body := &bytes.Buffer{}
		contentType, err := form.Encode(body, fields)
		if err != nil {
			log.Error("failed to encode map item form", "err", err.Error())
			reportError(w, "form", err)
			return
		}

		convertedItems.WithLabelValues("form").Inc()

		w.Header().Add("Content-Type", contentType)
		w.WriteHeader(http.StatusOK)
		w.Write(body.Bytes())
	}
}

// NewFieldsHandler converts a map item payload into its outbound fields,
// returned as an ordered JSON object.
func NewFieldsHandler(registry *mapitems.Registry, authenticator auth.Enticator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var err error

		ctx, span := tracer.Start(r.Context(), "map-item-fields")
		defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

		_, ctx, _ = o11y.AddTraceIDToLoggerAndStoreInContext(span, logging.GetFromContext(ctx), ctx)

		mi, err := decodeMapItem(r, registry)
		if err != nil {
			reportError(w, "fields", err)
			return
		}

		labelItemType(r, mi)

		err = authenticator.CheckAccess(ctx, r, itemTypes(mi))
		if err != nil {
			reportError(w, "fields", err)
			return
		}

		fields, err := mi.APIResource()
		if err != nil {
			reportError(w, "fields", err)
			return
		}

		convertedItems.WithLabelValues("fields").Inc()

		writeJSON(w, fields)
	}
}

func NewCleanItemHandler(registry *mapitems.Registry, authenticator auth.Enticator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var err error

		ctx, span := tracer.Start(r.Context(), "clean-map-item")
		defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

		kind := chi.URLParam(r, "kind")

		variant, ok := registry.Variant(kind)
		if !ok {
			err = mapitems.NewUnknownVariantError(kind)
			apierrors.ReportNotFoundError(w, err.Error())
			return
		}

		err = authenticator.CheckAccess(ctx, r, []string{variant.Name})
		if err != nil {
			reportError(w, "clean", err)
			return
		}

		mi, err := mapitems.Clean(variant, mapitems.WithRegistry(registry))
		if err != nil {
			if errors.Is(err, mapitems.ErrUnknownVariant) {
				apierrors.ReportNotFoundError(w, err.Error())
				return
			}
			reportError(w, "clean", err)
			return
		}

		fields, err := mi.APIResource()
		if err != nil {
			reportError(w, "clean", err)
			return
		}

		writeJSON(w, fields)
	}
}

// NewFeaturesHandler exports a list of map item payloads as a GeoJSON feature
// collection, optionally keeping only the items of the variant named by the
// type query parameter.
func NewFeaturesHandler(registry *mapitems.Registry, authenticator auth.Enticator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var err error

		ctx, span := tracer.Start(r.Context(), "map-item-features")
		defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

		_, ctx, log := o11y.AddTraceIDToLoggerAndStoreInContext(span, logging.GetFromContext(ctx), ctx)

		query := featuresQuery{}
		err = decoder.Decode(&query, r.URL.Query())
		if err != nil {
			reportError(w, "features", fmt.Errorf("%w: %s", errInvalidRequest, err.Error()))
			return
		}

		body, err := io.ReadAll(r.Body)
		if err != nil {
			reportError(w, "features", fmt.Errorf("%w: %s", errInvalidRequest, err.Error()))
			return
		}

		payloads, err := model.PayloadsFromJSON(body)
		if err != nil {
			reportError(w, "features", fmt.Errorf("%w: %s", errInvalidRequest, err.Error()))
			return
		}

		list, err := mapitems.NewList(payloads, mapitems.WithRegistry(registry))
		if err != nil {
			reportError(w, "features", err)
			return
		}

		items := list.Items()
		types := []string{}

		if query.Type != "" {
			items, err = list.ByType(query.Type)
			if err != nil {
				reportError(w, "features", err)
				return
			}
		}

		for _, mi := range items {
			types = append(types, itemTypes(mi)...)
		}

		err = authenticator.CheckAccess(ctx, r, types)
		if err != nil {
			reportError(w, "features", err)
			return
		}

		fc, err := mapitems.FeatureCollection(items)
		if err != nil {
			reportError(w, "features", err)
			return
		}

		log.Debug("exported map items as features", "count", len(fc.Features))

		convertedItems.WithLabelValues("features").Add(float64(len(fc.Features)))

		w.Header().Add("Content-Type", "application/geo+json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(fc)
	}
}

func decodeMapItem(r *http.Request, registry *mapitems.Registry) (*mapitems.MapItem, error) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", errInvalidRequest, err.Error())
	}

	payload, err := model.PayloadFromJSON(body)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", errInvalidRequest, err.Error())
	}

	return mapitems.New(payload, mapitems.WithRegistry(registry))
}

func itemTypes(mi *mapitems.MapItem) []string {
	if mi.Type == nil {
		return []string{}
	}
	return []string{mi.Type.Name}
}

func labelItemType(r *http.Request, mi *mapitems.MapItem) {
	if mi.Type == nil {
		return
	}

	if labeler, found := otelhttp.LabelerFromContext(r.Context()); found {
		labeler.Add(attribute.String(TraceAttributeItemType, mi.Type.Name))
	}
}

func writeJSON(w http.ResponseWriter, v any) {
	b, err := json.Marshal(v)
	if err != nil {
		apierrors.ReportNewInternalError(w, err.Error())
		return
	}

	w.Header().Add("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

func reportError(w http.ResponseWriter, operation string, err error) {
	failedConversions.WithLabelValues(operation).Inc()

	switch {
	case errors.Is(err, errInvalidRequest):
		apierrors.ReportNewInvalidRequest(w, err.Error())
	case errors.Is(err, model.ErrMalformedInput),
		errors.Is(err, model.ErrUnresolvableRelation),
		errors.Is(err, mapitems.ErrUnknownVariant):
		apierrors.ReportNewBadRequestData(w, err.Error())
	case errors.Is(err, auth.ErrAccessDenied):
		apierrors.ReportUnauthorizedRequest(w, err.Error())
	default:
		apierrors.ReportNewInternalError(w, err.Error())
	}
}
