package query

import (
	"context"
	"testing"
	"time"

	"github.com/goliatone/go-trainops/command"
	"github.com/goliatone/go-trainops/guard"
	"github.com/goliatone/go-trainops/links"
	"github.com/goliatone/go-trainops/pkg/types"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func testLinks() *links.Builder {
	return links.NewBuilder(links.Config{BaseURL: "https://training.example.me"})
}

func TestPersonnelInventoryQuery_NormalizesPagination(t *testing.T) {
	repo := newQueryPersonRepo()
	q := NewPersonnelInventoryQuery(repo, nil, nil)

	_, err := q.Query(context.Background(), types.PersonnelFilter{
		Actor:      types.ActorRef{ID: uuid.New()},
		Pagination: types.Pagination{Limit: 0, Offset: -10},
	})
	require.NoError(t, err)
	require.Equal(t, 50, repo.lastFilter.Pagination.Limit)
	require.Equal(t, 0, repo.lastFilter.Pagination.Offset)

	_, err = q.Query(context.Background(), types.PersonnelFilter{
		Actor:      types.ActorRef{ID: uuid.New()},
		Pagination: types.Pagination{Limit: 5000},
	})
	require.NoError(t, err)
	require.Equal(t, 200, repo.lastFilter.Pagination.Limit)
}

func TestPersonnelInventoryQuery_RequiresActor(t *testing.T) {
	q := NewPersonnelInventoryQuery(newQueryPersonRepo(), nil, nil)

	_, err := q.Query(context.Background(), types.PersonnelFilter{})
	require.ErrorIs(t, err, types.ErrActorRequired)
}

func TestCategoryStatsQuery_ReturnsAggregate(t *testing.T) {
	repo := newQueryPersonRepo()
	repo.counts = []types.CategoryCount{
		{JobCategoryCode: "ATC", Count: 12},
		{JobCategoryCode: "FIRE", Count: 4},
	}
	q := NewCategoryStatsQuery(repo, nil, nil)

	counts, err := q.Query(context.Background(), CategoryStatsFilter{
		Actor: types.ActorRef{ID: uuid.New()},
	})
	require.NoError(t, err)
	require.Len(t, counts, 2)
	require.Equal(t, "ATC", counts[0].JobCategoryCode)
}

func TestQrTokenResolveQuery_ReturnsExistingToken(t *testing.T) {
	repo := newQueryPersonRepo()
	token := "existing-token"
	person := &types.Person{ID: uuid.New(), FullName: "Jovana Vuk", IsActive: true, QrCodeToken: &token}
	repo.byID[person.ID] = person

	q := NewQrTokenResolveQuery(QrResolveConfig{
		People: repo,
		Links:  testLinks(),
	})

	result, err := q.Query(context.Background(), QrTokenResolveInput{
		PersonID: person.ID,
		Actor:    types.ActorRef{ID: uuid.New()},
	})
	require.NoError(t, err)
	require.Equal(t, token, result.Token)
	require.False(t, result.Issued)
	require.Equal(t, "https://training.example.me/personnel-profile/existing-token", result.PublicURL)
}

func TestQrTokenResolveQuery_IssuesWhenMissing(t *testing.T) {
	repo := newQueryPersonRepo()
	person := &types.Person{ID: uuid.New(), FullName: "Stefan Rad", IsActive: true}
	repo.byID[person.ID] = person

	rotate := command.NewQrTokenRotateCommand(command.QrRotateCommandConfig{
		People: repo,
		Links:  testLinks(),
	})
	q := NewQrTokenResolveQuery(QrResolveConfig{
		People: repo,
		Rotate: rotate,
		Links:  testLinks(),
	})

	result, err := q.Query(context.Background(), QrTokenResolveInput{
		PersonID: person.ID,
		Actor:    types.ActorRef{ID: uuid.New()},
	})
	require.NoError(t, err)
	require.True(t, result.Issued)
	require.NotEmpty(t, result.Token)
	require.Equal(t, result.Token, *repo.byID[person.ID].QrCodeToken)
}

func TestQrTokenResolveQuery_UnknownPerson(t *testing.T) {
	q := NewQrTokenResolveQuery(QrResolveConfig{
		People: newQueryPersonRepo(),
		Links:  testLinks(),
	})

	_, err := q.Query(context.Background(), QrTokenResolveInput{
		PersonID: uuid.New(),
		Actor:    types.ActorRef{ID: uuid.New()},
	})
	require.ErrorIs(t, err, command.ErrPersonNotFound)
}

func TestPublicProfileQuery_ResolvesAndStampsAccess(t *testing.T) {
	repo := newQueryPersonRepo()
	token := "public-token"
	person := &types.Person{
		ID:          uuid.New(),
		Email:       "private@example.me",
		FullName:    "Milica Bo",
		Role:        types.PersonRoleInstructor,
		IsActive:    true,
		QrCodeToken: &token,
	}
	repo.byID[person.ID] = person

	accessedAt := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	q := NewPublicProfileQuery(repo, fixedClock{t: accessedAt}, nil)

	profile, err := q.Query(context.Background(), PublicProfileLookup{Token: token})
	require.NoError(t, err)
	require.Equal(t, person.ID, profile.PersonID)
	require.Equal(t, "Milica Bo", profile.FullName)
	require.Equal(t, types.PersonRoleInstructor, profile.Role)
	require.NotNil(t, repo.byID[person.ID].QrCodeLastAccessed)
	require.Equal(t, accessedAt, *repo.byID[person.ID].QrCodeLastAccessed)
}

func TestPublicProfileQuery_RotatedTokenStopsResolving(t *testing.T) {
	repo := newQueryPersonRepo()
	current := "current-token"
	person := &types.Person{ID: uuid.New(), FullName: "Old Token", IsActive: true, QrCodeToken: &current}
	repo.byID[person.ID] = person

	q := NewPublicProfileQuery(repo, nil, nil)

	_, err := q.Query(context.Background(), PublicProfileLookup{Token: "previous-token"})
	require.ErrorIs(t, err, ErrQrTokenNotFound)
}

func TestAuditTrailQuery_AdminOnly(t *testing.T) {
	people := newQueryPersonRepo()
	admin := &types.Person{ID: uuid.New(), Role: types.PersonRoleAdmin, IsActive: true}
	employee := &types.Person{ID: uuid.New(), Role: types.PersonRoleEmployee, IsActive: true}
	people.byID[admin.ID] = admin
	people.byID[employee.ID] = employee

	audit := &fakeAuditRepo{page: types.AuditPage{
		Records: []types.AuditRecord{{Action: "PERSON_INVITED"}},
		Total:   1,
	}}
	q := NewAuditTrailQuery(audit, nil, guard.NewGuard(people))

	_, err := q.Query(context.Background(), types.AuditFilter{
		Actor: types.ActorRef{ID: employee.ID},
	})
	require.True(t, types.IsForbidden(err))

	page, err := q.Query(context.Background(), types.AuditFilter{
		Actor: types.ActorRef{ID: admin.ID},
	})
	require.NoError(t, err)
	require.Equal(t, 1, page.Total)
}

// --- Test helpers ---

type queryPersonRepo struct {
	byID       map[uuid.UUID]*types.Person
	lastFilter types.PersonnelFilter
	counts     []types.CategoryCount
}

func newQueryPersonRepo() *queryPersonRepo {
	return &queryPersonRepo{byID: map[uuid.UUID]*types.Person{}}
}

func (f *queryPersonRepo) GetByID(_ context.Context, id uuid.UUID) (*types.Person, error) {
	return f.byID[id], nil
}

func (f *queryPersonRepo) GetByEmail(context.Context, string) (*types.Person, error) {
	return nil, nil
}

func (f *queryPersonRepo) GetPendingByEmail(context.Context, string) (*types.Person, error) {
	return nil, nil
}

func (f *queryPersonRepo) GetByQrToken(_ context.Context, token string) (*types.Person, error) {
	for _, person := range f.byID {
		if person.QrCodeToken != nil && *person.QrCodeToken == token {
			return person, nil
		}
	}
	return nil, nil
}

func (f *queryPersonRepo) Create(_ context.Context, person *types.Person) (*types.Person, error) {
	f.byID[person.ID] = person
	return person, nil
}

func (f *queryPersonRepo) Update(_ context.Context, person *types.Person) (*types.Person, error) {
	f.byID[person.ID] = person
	return person, nil
}

func (f *queryPersonRepo) LinkAccount(context.Context, uuid.UUID, types.AccountLink) (*types.Person, error) {
	return nil, nil
}

func (f *queryPersonRepo) RotateQrToken(_ context.Context, personID uuid.UUID, token string, _ time.Time) (*types.Person, error) {
	person, ok := f.byID[personID]
	if !ok {
		return nil, nil
	}
	person.QrCodeToken = &token
	person.QrCodeLastAccessed = nil
	return person, nil
}

func (f *queryPersonRepo) TouchQrAccess(_ context.Context, personID uuid.UUID, accessedAt time.Time) error {
	if person, ok := f.byID[personID]; ok {
		person.QrCodeLastAccessed = &accessedAt
	}
	return nil
}

func (f *queryPersonRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(f.byID, id)
	return nil
}

func (f *queryPersonRepo) ListPersonnel(_ context.Context, filter types.PersonnelFilter) (types.PersonnelPage, error) {
	f.lastFilter = filter
	return types.PersonnelPage{}, nil
}

func (f *queryPersonRepo) CountByCategory(context.Context) ([]types.CategoryCount, error) {
	return f.counts, nil
}

type fakeAuditRepo struct {
	page types.AuditPage
}

func (f *fakeAuditRepo) ListAudit(context.Context, types.AuditFilter) (types.AuditPage, error) {
	return f.page, nil
}

type fixedClock struct {
	t time.Time
}

func (f fixedClock) Now() time.Time {
	return f.t
}
