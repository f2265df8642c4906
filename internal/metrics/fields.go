package metrics

// Attribute keys shared by the exported series.
const (
	AttrMethod   = "method"
	AttrPath     = "path"
	AttrStatus   = "status"
	AttrSource   = "source"
	AttrDocument = "document"
	AttrOutcome  = "outcome"
)

// Values of AttrOutcome.
const (
	OutcomeOK    = "ok"
	OutcomeError = "error"
)

func outcome(err error) string {
	if err != nil {
		return OutcomeError
	}
	return OutcomeOK
}
