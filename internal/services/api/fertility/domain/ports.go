package domain

import "context"

// ServicePort is consumed by handlers, the CLI and other modules
type ServicePort interface {
	Figures(ctx context.Context) ([]Chart, error)
	Figure(ctx context.Context, n int) (Chart, error)
	Table(ctx context.Context, in TableInput) (TableOutput, error)
	Countries(ctx context.Context) (CountriesOutput, error)
	Export(ctx context.Context, in TableInput, format string) (Export, error)
}
