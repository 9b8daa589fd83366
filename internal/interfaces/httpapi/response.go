package httpapi

import (
	"context"
	"net/http"
	"strconv"

	sonic "github.com/bytedance/sonic"
	"github.com/valyala/bytebufferpool"
)

const (
	textNoData        = "Nema podataka za zadati ID."
	textInternalError = "Interna greska servera"
	textUpstreamError = "API greska: "
)

// writeJSON renders payload as indented JSON into a pooled buffer so the
// status is only committed once encoding has succeeded.
func writeJSON(ctx context.Context, w http.ResponseWriter, status int, payload any) error {
	_, span := startSpan(ctx, "httpapi.writeJSON")
	defer span.End()

	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	enc := sonic.ConfigStd.NewEncoder(buf)
	enc.SetIndent("", "  ")
	if err := enc.Encode(payload); err != nil {
		return err
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(status)
	_, err := w.Write(buf.B)
	return err
}

func writeText(ctx context.Context, w http.ResponseWriter, status int, body string) {
	_, span := startSpan(ctx, "httpapi.writeText")
	defer span.End()

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Content-Length", strconv.Itoa(len(body)))
	w.WriteHeader(status)
	_, _ = w.Write([]byte(body))
}

func writeInternalError(ctx context.Context, w http.ResponseWriter) {
	writeText(ctx, w, http.StatusInternalServerError, textInternalError)
}

func upstreamErrorText(status int) string {
	return textUpstreamError + strconv.Itoa(status)
}
