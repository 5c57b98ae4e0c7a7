package roles

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/meridian-erp/meridian-erp/internal/permissions"
	"github.com/meridian-erp/meridian-erp/internal/shared"
)

type stubRegistry struct {
	ids map[string]int64
}

func (s *stubRegistry) FindByName(ctx context.Context, name string) (permissions.Permission, error) {
	id, ok := s.ids[name]
	if !ok {
		return permissions.Permission{}, shared.ErrNotFound
	}
	return permissions.Permission{ID: id, Name: name}, nil
}

type stubGranter struct {
	granted map[int64][]int64
	fail    bool
}

func (s *stubGranter) Grant(ctx context.Context, userID, permissionID int64) bool {
	if s.fail {
		return false
	}
	if s.granted == nil {
		s.granted = make(map[int64][]int64)
	}
	s.granted[userID] = append(s.granted[userID], permissionID)
	return true
}

func fullRegistry() *stubRegistry {
	reg := &stubRegistry{ids: make(map[string]int64)}
	for i, p := range permissions.Catalog() {
		reg.ids[p.Name] = int64(i + 1)
	}
	return reg
}

func TestDefaultPermissionsForUnknownRole(t *testing.T) {
	require.Empty(t, DefaultPermissionsFor("Intern"))
	require.Empty(t, DefaultPermissionsFor(""))
}

func TestDefaultPermissionsAreCopies(t *testing.T) {
	first := DefaultPermissionsFor(RoleViewer)
	first[0] = "mutated"
	require.NotEqual(t, first[0], DefaultPermissionsFor(RoleViewer)[0])
}

func TestDefaultsExistInCatalog(t *testing.T) {
	known := make(map[string]struct{})
	for _, p := range permissions.Catalog() {
		known[p.Name] = struct{}{}
	}
	for _, role := range Roles() {
		for _, name := range DefaultPermissionsFor(role.Name) {
			_, ok := known[name]
			require.True(t, ok, "role %s references unknown permission %q", role.Name, name)
		}
	}
}

func TestProvisionDefaults(t *testing.T) {
	granter := &stubGranter{}
	svc := NewService(fullRegistry(), granter, nil)

	n := svc.ProvisionDefaults(context.Background(), 7, RoleSales)
	require.Equal(t, len(DefaultPermissionsFor(RoleSales)), n)
	require.Len(t, granter.granted[7], n)
}

func TestProvisionDefaultsSkipsUnknownNames(t *testing.T) {
	// Registry only knows a single permission; the rest are skipped.
	reg := &stubRegistry{ids: map[string]int64{permissions.PermSalesView: 1}}
	granter := &stubGranter{}
	svc := NewService(reg, granter, nil)

	n := svc.ProvisionDefaults(context.Background(), 7, RoleViewer)
	require.Equal(t, 1, n)
	require.Equal(t, []int64{1}, granter.granted[7])
}

func TestProvisionDefaultsUnknownRoleGrantsNothing(t *testing.T) {
	granter := &stubGranter{}
	svc := NewService(fullRegistry(), granter, nil)

	require.Zero(t, svc.ProvisionDefaults(context.Background(), 7, "NoSuchRole"))
	require.Empty(t, granter.granted)
}

func TestProvisionDefaultsCountsFailures(t *testing.T) {
	granter := &stubGranter{fail: true}
	svc := NewService(fullRegistry(), granter, nil)

	require.Zero(t, svc.ProvisionDefaults(context.Background(), 7, RoleCashier))
}
