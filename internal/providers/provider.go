package providers

import "context"

// DocumentSource fetches the raw text of a named CSV document.
// name is the configured asset file name (for example the schedule export).
// Implementations must honour ctx cancellation. An empty document is valid
// text and is returned as "", nil.
type DocumentSource interface {
	FetchDocument(ctx context.Context, name string) (string, error)
}

// SourceFunc adapts a plain function to DocumentSource.
type SourceFunc func(ctx context.Context, name string) (string, error)

func (f SourceFunc) FetchDocument(ctx context.Context, name string) (string, error) {
	return f(ctx, name)
}
