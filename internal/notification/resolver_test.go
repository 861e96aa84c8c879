package notification

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AlexSaifo/school-management-system-sub003/internal/models"
)

type fakeUsers struct {
	all    []string
	byRole map[models.UserRole][]string
	err    error
}

func (f *fakeUsers) ListActiveUserIDs(context.Context) ([]string, error) {
	return f.all, f.err
}

func (f *fakeUsers) ListActiveUserIDsByRole(_ context.Context, role models.UserRole) ([]string, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.byRole[role], nil
}

type fakeClasses struct {
	audiences  map[string][]string
	failing    map[string]bool
	gotFilters map[string][]models.UserRole
}

func (f *fakeClasses) ClassAudience(_ context.Context, classID string, roles []models.UserRole) ([]string, error) {
	if f.gotFilters == nil {
		f.gotFilters = make(map[string][]models.UserRole)
	}
	f.gotFilters[classID] = roles
	if f.failing[classID] {
		return nil, errors.New("boom")
	}
	return f.audiences[classID], nil
}

func newTestResolver(users *fakeUsers, classes *fakeClasses) *Resolver {
	return NewResolver(users, classes, zerolog.Nop())
}

func TestResolveNoAudience(t *testing.T) {
	r := newTestResolver(&fakeUsers{}, &fakeClasses{})

	n := models.Notification{ID: "n1", Type: models.NotificationTypeAnnouncement}
	_, err := r.Resolve(context.Background(), n)
	require.ErrorIs(t, err, ErrNoAudience)
}

func TestResolveAllDeduplicates(t *testing.T) {
	users := &fakeUsers{all: []string{"u1", "u2", "u3"}}
	r := newTestResolver(users, &fakeClasses{})

	n := models.Notification{
		TargetRoles: []models.TargetRole{models.TargetAll},
		TargetUsers: []string{"u2", "u4"},
	}
	ids, err := r.Resolve(context.Background(), n)
	require.NoError(t, err)
	assert.Equal(t, []string{"u1", "u2", "u3", "u4"}, ids)
}

func TestResolveRolesSchoolWide(t *testing.T) {
	users := &fakeUsers{byRole: map[models.UserRole][]string{
		models.RoleStudent: {"s1", "s2"},
		models.RoleTeacher: {"t1"},
		models.RoleParent:  {"p1"},
	}}
	r := newTestResolver(users, &fakeClasses{})

	n := models.Notification{
		TargetRoles: []models.TargetRole{models.TargetStudents, models.TargetTeachers},
	}
	ids, err := r.Resolve(context.Background(), n)
	require.NoError(t, err)
	assert.Equal(t, []string{"s1", "s2", "t1"}, ids)
}

func TestResolveClassScopesRoleTargeting(t *testing.T) {
	classes := &fakeClasses{audiences: map[string][]string{
		"c1": {"s1", "s2", "p1", "p2"},
	}}
	r := newTestResolver(&fakeUsers{all: []string{"everyone"}}, classes)

	n := models.Notification{
		TargetRoles:   []models.TargetRole{models.TargetStudents, models.TargetParents},
		TargetClasses: []string{"c1"},
	}
	ids, err := r.Resolve(context.Background(), n)
	require.NoError(t, err)
	assert.Equal(t, []string{"s1", "s2", "p1", "p2"}, ids)

	// Roles must have been pushed down as the class audience filter rather
	// than expanded school-wide.
	assert.Equal(t, []models.UserRole{models.RoleStudent, models.RoleParent}, classes.gotFilters["c1"])
}

func TestResolveClassWithAllRolePassesNilFilter(t *testing.T) {
	classes := &fakeClasses{audiences: map[string][]string{"c1": {"s1"}}}
	r := newTestResolver(&fakeUsers{}, classes)

	n := models.Notification{
		TargetRoles:   []models.TargetRole{models.TargetAll},
		TargetClasses: []string{"c1"},
	}
	_, err := r.Resolve(context.Background(), n)
	require.NoError(t, err)
	assert.Nil(t, classes.gotFilters["c1"])
}

func TestResolvePartialClassFailure(t *testing.T) {
	classes := &fakeClasses{
		audiences: map[string][]string{"c2": {"s3", "s4"}},
		failing:   map[string]bool{"c1": true},
	}
	r := newTestResolver(&fakeUsers{}, classes)

	n := models.Notification{
		TargetRoles:   []models.TargetRole{models.TargetStudents},
		TargetClasses: []string{"c1", "c2"},
	}
	ids, err := r.Resolve(context.Background(), n)
	require.NoError(t, err)
	assert.Equal(t, []string{"s3", "s4"}, ids)
}

func TestResolveRoleQueryFailureSkipsBranch(t *testing.T) {
	users := &fakeUsers{err: errors.New("db down")}
	r := newTestResolver(users, &fakeClasses{})

	n := models.Notification{
		TargetRoles: []models.TargetRole{models.TargetStudents},
		TargetUsers: []string{"u9"},
	}
	ids, err := r.Resolve(context.Background(), n)
	require.NoError(t, err)
	assert.Equal(t, []string{"u9"}, ids)
}

func TestResolveExcludesCreator(t *testing.T) {
	users := &fakeUsers{byRole: map[models.UserRole][]string{
		models.RoleTeacher: {"t1", "t2"},
	}}
	r := newTestResolver(users, &fakeClasses{})

	n := models.Notification{
		TargetRoles: []models.TargetRole{models.TargetTeachers},
		CreatedBy:   models.CreatedBy{ID: "t1", Role: models.RoleTeacher},
	}
	ids, err := r.Resolve(context.Background(), n)
	require.NoError(t, err)
	assert.Equal(t, []string{"t2"}, ids)
}

func TestResolveKeepsCreatorWhenExplicitlyTargeted(t *testing.T) {
	r := newTestResolver(&fakeUsers{}, &fakeClasses{})

	n := models.Notification{
		TargetUsers: []string{"t1", "t2"},
		CreatedBy:   models.CreatedBy{ID: "t1", Role: models.RoleTeacher},
	}
	ids, err := r.Resolve(context.Background(), n)
	require.NoError(t, err)
	assert.Equal(t, []string{"t1", "t2"}, ids)
}
