package domain

// OrgScope is the tenant boundary for every API call. It is immutable and
// threaded explicitly through transports and services so multiple
// organization-scoped clients can coexist in one process.
type OrgScope struct {
	ID string `json:"organization_id"`
}

// Validate checks the scope can be used for API calls.
func (o OrgScope) Validate() error {
	if o.ID == "" {
		return ErrInvalidInput
	}
	return nil
}
