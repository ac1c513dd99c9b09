package client

import "context"

// Positions of the output parameters of InvokeIONAPIMethod.
const (
	ParamResponseCode    = 8
	ParamResponseContent = 9
	ParamResponseHeaders = 10
	ParamResponseInfobar = 11
)

// InvokeRequest carries the positional input arguments of InvokeIONAPIMethod.
type InvokeRequest struct {
	SSO          string
	ServerID     string
	SuiteContext string
	HTTPMethod   string
	MethodName   string
	Parameters   string
	ContentType  string
	Timeout      string
}

type InvokeResponse struct {
	// Failed is set when the method returned a standard error.
	Failed     bool
	Message    string
	Parameters []string
}

// Parameter returns the i-th parameter, or "" when the backend sent fewer.
func (r *InvokeResponse) Parameter(i int) string {
	if r == nil || i < 0 || i >= len(r.Parameters) {
		return ""
	}
	return r.Parameters[i]
}

// MethodInvoker routes a call to an ION API endpoint through the
// IONAPIMethods IDO, the only path the adapter has to the target service.
type MethodInvoker interface {
	InvokeIONAPIMethod(ctx context.Context, req InvokeRequest) (*InvokeResponse, error)
}
