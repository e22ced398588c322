package endpoints

import (
	"bytes"
	_ "embed"
	"net/http"
	"sync"

	"github.com/yuin/goldmark"

	"smscat/pkg/server"
)

//go:embed API.md
var apiDocsMarkdown []byte

var (
	apiDocsOnce sync.Once
	apiDocsHTML []byte
	apiDocsErr  error
)

const docsPage = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>SMS Categorization API</title>
<style>
body { font-family: sans-serif; max-width: 48em; margin: 2em auto; padding: 0 1em; }
pre { background: #f4f4f4; padding: 1em; overflow-x: auto; }
code { background: #f4f4f4; }
</style>
</head>
<body>
`

// RegisterDocsEndpoint registers the API documentation endpoint
func RegisterDocsEndpoint(s *server.Server) {
	// GET /docs - Rendered API documentation
	s.Router.HandleFunc("/docs", handleDocs()).Methods("GET")
}

func renderDocs() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(docsPage)
	if err := goldmark.Convert(apiDocsMarkdown, &buf); err != nil {
		return nil, err
	}
	buf.WriteString("</body>\n</html>\n")
	return buf.Bytes(), nil
}

func handleDocs() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		apiDocsOnce.Do(func() {
			apiDocsHTML, apiDocsErr = renderDocs()
		})
		if apiDocsErr != nil {
			respondWithError(w, http.StatusInternalServerError, apiDocsErr.Error())
			return
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(apiDocsHTML)
	}
}
