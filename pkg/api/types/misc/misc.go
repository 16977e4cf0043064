package misc

// Health is the body of `GET /health`.
type Health struct {
	Status string `json:"status"`
}

func (h Health) Equal(o Health) bool {
	return h == o
}

// Route is one registered route, for the docs index.
type Route struct {
	Method string `json:"method"`
	Path   string `json:"path"`
}

// Docs is the body of `GET /docs`.
type Docs struct {
	Routes []Route `json:"routes"`
}
