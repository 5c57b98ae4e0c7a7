package permissions

// Permission represents an atomic capability gating one action or view.
type Permission struct {
	ID          int64
	Name        string
	Description string
	Category    string
}
