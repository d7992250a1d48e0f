package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// docsPage is a self-contained API reference served at /docs.
const docsPage = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>docqa API</title>
<style>
body { font-family: sans-serif; max-width: 52rem; margin: 2rem auto; padding: 0 1rem; color: #222; }
code, pre { background: #f4f4f4; border-radius: 4px; padding: 2px 5px; }
pre { padding: 0.8rem; overflow-x: auto; }
h2 { border-bottom: 1px solid #ddd; padding-bottom: 0.3rem; margin-top: 2rem; }
.method { font-weight: bold; color: #0a6; }
</style>
</head>
<body>
<h1>docqa API</h1>
<p>Upload documents, then ask questions against them. Answers are
extracted verbatim from the document with citations and a confidence
score.</p>

<h2><span class="method">POST</span> /upload</h2>
<p>Multipart form with a <code>file</code> field. Supported formats:
PDF, Markdown, HTML and plain text.</p>
<pre>curl -F "file=@report.pdf" http://localhost:8080/upload</pre>
<p>Returns <code>200</code> with the document record, including the
generated <code>id</code>.</p>

<h2><span class="method">POST</span> /query</h2>
<pre>curl -H "Content-Type: application/json" \
  -d '{"document_id": "&lt;id&gt;", "question": "What is the main finding?"}' \
  http://localhost:8080/query</pre>
<p>Returns an answer, a confidence in <code>[0,1]</code> and the cited
sources with page or chunk labels.</p>

<h2><span class="method">GET</span> /documents</h2>
<p>Lists all uploaded documents.</p>

<h2><span class="method">GET</span> /documents/{id}</h2>
<p>Returns one document record, or <code>404</code>.</p>

<h2><span class="method">DELETE</span> /documents/{id}</h2>
<p>Removes a document and its index. Returns <code>204</code>.</p>

<h2>Errors</h2>
<p>Errors come back as <code>{"error": "..."}</code>:
<code>415</code> unsupported file type, <code>400</code> empty document
or bad request, <code>422</code> extraction failure, <code>502</code>
embedding provider failure, <code>404</code> unknown document.</p>
</body>
</html>
`

func (s *Server) handleDocs(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(docsPage))
}
