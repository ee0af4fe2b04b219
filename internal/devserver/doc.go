// Package devserver serves the live stylesheet during development.
//
// Routes:
//   - GET /las.css: the current stylesheet, generated in memory
//   - GET /__las/ws: websocket pushing {"type":"update"} after every change
//   - GET /metrics: Prometheus metrics
//   - everything else: static files from the root directory; HTML pages get
//     the stylesheet and a small reload client injected into <head>
package devserver
