package roles

// Role is a named bundle of default permissions used for initial provisioning.
// Roles are defined in code and are not editable at runtime.
type Role struct {
	Name        string
	Description string
}
