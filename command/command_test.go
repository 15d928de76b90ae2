package command

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	goerrors "github.com/goliatone/go-errors"
	featuregate "github.com/goliatone/go-featuregate/gate"
	"github.com/goliatone/go-trainops/guard"
	"github.com/goliatone/go-trainops/links"
	"github.com/goliatone/go-trainops/pkg/types"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func testLinks() *links.Builder {
	return links.NewBuilder(links.Config{BaseURL: "https://training.example.me"})
}

func TestPersonOnboardCommand_CreatesPendingPersonAndInvitation(t *testing.T) {
	people := newFakePersonRepo()
	assignments := newFakeAssignmentRepo()
	sink := &recordingAuditSink{}
	fixedTime := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	ids := &seqIDGenerator{ids: []uuid.UUID{
		uuid.MustParse("aaaaaaaa-0000-0000-0000-000000000001"),
		uuid.MustParse("aaaaaaaa-0000-0000-0000-000000000002"),
	}}
	airportID := uuid.New()

	var onboarded types.PersonEvent
	cmd := NewPersonOnboardCommand(OnboardCommandConfig{
		People:      people,
		Assignments: assignments,
		Links:       testLinks(),
		Clock:       fixedClock{t: fixedTime},
		IDGen:       ids,
		Audit:       sink,
		Hooks: types.Hooks{
			AfterOnboard: func(_ context.Context, evt types.PersonEvent) {
				onboarded = evt
			},
		},
	})

	result := &PersonOnboardResult{}
	err := cmd.Execute(context.Background(), PersonOnboardInput{
		Email:     "  Marko.Petrovic@example.me ",
		FullName:  "Marko Petrovic",
		Role:      "Instructor",
		AirportID: airportID.String(),
		Actor:     types.ActorRef{ID: uuid.New()},
		Result:    result,
	})

	require.NoError(t, err)
	require.Equal(t, uuid.MustParse("aaaaaaaa-0000-0000-0000-000000000001"), result.PersonID)
	require.Equal(t, "Marko.Petrovic@example.me", result.Email)
	require.Equal(t, types.PersonRoleInstructor, result.Role)
	require.Equal(t, "aaaaaaaa-0000-0000-0000-000000000002", result.InvitationToken)
	require.Contains(t, result.SignupLink, "/auth/invited-signup?")
	require.Contains(t, result.SignupLink, "token=aaaaaaaa-0000-0000-0000-000000000002")
	require.NoError(t, result.AssignmentError)

	stored := people.byID[result.PersonID]
	require.NotNil(t, stored)
	require.True(t, stored.Pending())
	require.True(t, stored.StateConsistent())
	require.NotNil(t, stored.InvitationToken)

	require.Len(t, assignments.created, 1)
	require.Equal(t, result.PersonID, assignments.created[0].EmployeeID)
	require.Equal(t, airportID, assignments.created[0].AirportID)
	require.True(t, assignments.created[0].IsPrimary)
	require.Equal(t, fixedTime, assignments.created[0].StartDate)

	require.Len(t, sink.records, 1)
	require.Equal(t, AuditActionPersonInvited, sink.records[0].Action)
	require.Equal(t, "profiles", sink.records[0].TableName)
	require.Equal(t, result.PersonID.String(), sink.records[0].RecordID)
	_, hasToken := sink.records[0].NewData["invitation_token"]
	require.False(t, hasToken, "audit payload must not carry the raw token")

	require.Equal(t, AuditActionPersonInvited, onboarded.Action)
	require.Equal(t, result.PersonID, onboarded.Person.ID)
}

func TestPersonOnboardCommand_DuplicateEmail(t *testing.T) {
	people := newFakePersonRepo()
	existing := &types.Person{ID: uuid.New(), Email: "taken@example.me", IsActive: true}
	people.byID[existing.ID] = existing

	cmd := NewPersonOnboardCommand(OnboardCommandConfig{
		People: people,
		Links:  testLinks(),
	})

	err := cmd.Execute(context.Background(), PersonOnboardInput{
		Email:    "taken@example.me",
		FullName: "Someone Else",
		Actor:    types.ActorRef{ID: uuid.New()},
	})

	require.Error(t, err)
	require.True(t, types.IsConflict(err))
	require.Equal(t, types.TextCodeEmailTaken, textCode(t, err))
	require.Len(t, people.byID, 1, "no second record may be created")
}

func TestPersonOnboardCommand_RacingInsertConflict(t *testing.T) {
	people := newFakePersonRepo()
	people.createErr = types.Conflict("duplicate email", types.TextCodeEmailTaken)

	cmd := NewPersonOnboardCommand(OnboardCommandConfig{
		People: people,
		Links:  testLinks(),
	})

	err := cmd.Execute(context.Background(), PersonOnboardInput{
		Email:    "race@example.me",
		FullName: "Race Winner",
		Actor:    types.ActorRef{ID: uuid.New()},
	})

	require.True(t, types.IsConflict(err))
	require.Equal(t, types.TextCodeEmailTaken, textCode(t, err))
}

func TestPersonOnboardCommand_SentinelSelectionsNormalized(t *testing.T) {
	people := newFakePersonRepo()
	assignments := newFakeAssignmentRepo()

	cmd := NewPersonOnboardCommand(OnboardCommandConfig{
		People:      people,
		Assignments: assignments,
		Links:       testLinks(),
	})

	result := &PersonOnboardResult{}
	err := cmd.Execute(context.Background(), PersonOnboardInput{
		Email:         "nobody@example.me",
		FullName:      "No Selection",
		JobCategoryID: SentinelNoCategory,
		AirportID:     SentinelNoAirport,
		Actor:         types.ActorRef{ID: uuid.New()},
		Result:        result,
	})

	require.NoError(t, err)
	require.Nil(t, people.byID[result.PersonID].JobCategoryID)
	require.Empty(t, assignments.created)
}

func TestPersonOnboardCommand_AssignmentFailureIsBestEffort(t *testing.T) {
	people := newFakePersonRepo()
	assignments := newFakeAssignmentRepo()
	assignments.createErr = errors.New("assignment store down")

	cmd := NewPersonOnboardCommand(OnboardCommandConfig{
		People:      people,
		Assignments: assignments,
		Links:       testLinks(),
	})

	result := &PersonOnboardResult{}
	err := cmd.Execute(context.Background(), PersonOnboardInput{
		Email:     "pilot@example.me",
		FullName:  "Best Effort",
		AirportID: uuid.New().String(),
		Actor:     types.ActorRef{ID: uuid.New()},
		Result:    result,
	})

	require.NoError(t, err, "assignment failure must not fail the onboarding")
	require.Error(t, result.AssignmentError)
	require.NotNil(t, people.byID[result.PersonID])
}

func TestPersonOnboardCommand_DefaultsRoleToEmployee(t *testing.T) {
	people := newFakePersonRepo()

	cmd := NewPersonOnboardCommand(OnboardCommandConfig{
		People: people,
		Links:  testLinks(),
	})

	result := &PersonOnboardResult{}
	err := cmd.Execute(context.Background(), PersonOnboardInput{
		Email:    "blank-role@example.me",
		FullName: "Blank Role",
		Actor:    types.ActorRef{ID: uuid.New()},
		Result:   result,
	})

	require.NoError(t, err)
	require.Equal(t, types.PersonRoleEmployee, result.Role)
}

func TestPersonOnboardCommand_RejectsUnknownRole(t *testing.T) {
	cmd := NewPersonOnboardCommand(OnboardCommandConfig{
		People: newFakePersonRepo(),
		Links:  testLinks(),
	})

	err := cmd.Execute(context.Background(), PersonOnboardInput{
		Email:    "ok@example.me",
		FullName: "Unknown Role",
		Role:     "astronaut",
		Actor:    types.ActorRef{ID: uuid.New()},
	})

	require.Error(t, err)
	require.Equal(t, "INVALID_ROLE", textCode(t, err))
}

func TestPersonOnboardCommand_FeatureGateDisabled(t *testing.T) {
	gate := &stubFeatureGate{enabled: false}
	cmd := NewPersonOnboardCommand(OnboardCommandConfig{
		People:      newFakePersonRepo(),
		Links:       testLinks(),
		FeatureGate: gate,
	})

	err := cmd.Execute(context.Background(), PersonOnboardInput{
		Email:    "gated@example.me",
		FullName: "Gated Person",
		Actor:    types.ActorRef{ID: uuid.New()},
	})

	require.ErrorIs(t, err, ErrInviteDisabled)
	require.Contains(t, gate.keys, "personnel.invite")
}

func TestPersonOnboardCommand_RequiresAdmin(t *testing.T) {
	people := newFakePersonRepo()
	actor := &types.Person{ID: uuid.New(), Email: "emp@example.me", Role: types.PersonRoleEmployee, IsActive: true}
	people.byID[actor.ID] = actor

	cmd := NewPersonOnboardCommand(OnboardCommandConfig{
		People: people,
		Links:  testLinks(),
		Guard:  guard.NewGuard(people),
	})

	err := cmd.Execute(context.Background(), PersonOnboardInput{
		Email:    "new@example.me",
		FullName: "New Person",
		Actor:    types.ActorRef{ID: actor.ID},
	})

	require.True(t, types.IsForbidden(err))
}

func TestPersonOnboardCommand_SignsInvitationLink(t *testing.T) {
	people := newFakePersonRepo()
	signer := &stubSecureLinks{link: "https://training.example.me/auth/invited-signup?token=signed-token"}

	cmd := NewPersonOnboardCommand(OnboardCommandConfig{
		People:      people,
		Links:       testLinks(),
		SecureLinks: signer,
	})

	result := &PersonOnboardResult{}
	err := cmd.Execute(context.Background(), PersonOnboardInput{
		Email:    "jelena.vuk@example.me",
		FullName: "Jelena Vuk",
		Actor:    types.ActorRef{ID: uuid.New()},
		Result:   result,
	})

	require.NoError(t, err)
	require.Equal(t, signer.link, result.SignupLink)
	require.Equal(t, secureSignupRoute, signer.route)
	require.Equal(t, "jelena.vuk@example.me", signer.payload["email"])
	require.Equal(t, result.InvitationToken, signer.payload["token"])
}

func TestPersonOnboardCommand_SignerFailureFallsBackToPlainLink(t *testing.T) {
	people := newFakePersonRepo()
	signer := &stubSecureLinks{err: errors.New("signing key rotated")}

	cmd := NewPersonOnboardCommand(OnboardCommandConfig{
		People:      people,
		Links:       testLinks(),
		SecureLinks: signer,
	})

	result := &PersonOnboardResult{}
	err := cmd.Execute(context.Background(), PersonOnboardInput{
		Email:    "jelena.vuk@example.me",
		FullName: "Jelena Vuk",
		Actor:    types.ActorRef{ID: uuid.New()},
		Result:   result,
	})

	require.NoError(t, err)
	require.Contains(t, result.SignupLink, "/auth/invited-signup?")
	require.Contains(t, result.SignupLink, "token="+result.InvitationToken)
}

func TestSignupCompleteCommand_LinksPendingPerson(t *testing.T) {
	people := newFakePersonRepo()
	token := "invite-token"
	pending := &types.Person{
		ID:              uuid.New(),
		Email:           "invitee@example.me",
		NeedsAuthSetup:  true,
		InvitationToken: &token,
	}
	people.byID[pending.ID] = pending

	accountID := uuid.New()
	identity := &stubIdentityProvider{accountID: accountID}
	sink := &recordingAuditSink{}
	linkedAt := time.Date(2025, 3, 11, 8, 0, 0, 0, time.UTC)

	cmd := NewSignupCompleteCommand(SignupCommandConfig{
		People:   people,
		Identity: identity,
		Clock:    fixedClock{t: linkedAt},
		Audit:    sink,
	})

	result := &SignupCompleteResult{}
	err := cmd.Execute(context.Background(), SignupCompleteInput{
		Email:          "invitee@example.me",
		Password:       "s3cret-passw0rd",
		PresentedToken: token,
		Result:         result,
	})

	require.NoError(t, err)
	require.Equal(t, accountID, result.AccountID)
	require.True(t, result.Linked)
	require.False(t, result.TokenMismatch)
	require.NotNil(t, result.Person)
	require.Equal(t, accountID, result.Person.ID, "linked record must adopt the account id")
	require.True(t, result.Person.IsActive)
	require.False(t, result.Person.NeedsAuthSetup)
	require.Nil(t, result.Person.InvitationToken)
	require.NotNil(t, result.Person.AuthUserLinkedAt)
	require.Equal(t, linkedAt, *result.Person.AuthUserLinkedAt)

	require.Len(t, sink.records, 1)
	require.Equal(t, AuditActionPersonLinked, sink.records[0].Action)
	require.Equal(t, accountID, sink.records[0].ActorID)
}

func TestSignupCompleteCommand_NoPendingRecord(t *testing.T) {
	identity := &stubIdentityProvider{accountID: uuid.New()}
	cmd := NewSignupCompleteCommand(SignupCommandConfig{
		People:   newFakePersonRepo(),
		Identity: identity,
	})

	result := &SignupCompleteResult{}
	err := cmd.Execute(context.Background(), SignupCompleteInput{
		Email:    "walkin@example.me",
		Password: "s3cret-passw0rd",
		Result:   result,
	})

	require.NoError(t, err, "signup without an invitation still succeeds")
	require.False(t, result.Linked)
	require.Equal(t, identity.accountID, result.AccountID)
}

func TestSignupCompleteCommand_IdentityRejectionAbortsEarly(t *testing.T) {
	people := newFakePersonRepo()
	token := "invite-token"
	pending := &types.Person{
		ID:              uuid.New(),
		Email:           "invitee@example.me",
		NeedsAuthSetup:  true,
		InvitationToken: &token,
	}
	people.byID[pending.ID] = pending

	cmd := NewSignupCompleteCommand(SignupCommandConfig{
		People:   people,
		Identity: &stubIdentityProvider{createErr: errors.New("weak password")},
	})

	err := cmd.Execute(context.Background(), SignupCompleteInput{
		Email:    "invitee@example.me",
		Password: "123",
	})

	require.Error(t, err)
	require.True(t, people.byID[pending.ID].Pending(), "pending record must stay untouched")
}

func TestSignupCompleteCommand_TokenMismatchIsPermissiveByDefault(t *testing.T) {
	people := newFakePersonRepo()
	token := "stored-token"
	pending := &types.Person{
		ID:              uuid.New(),
		Email:           "invitee@example.me",
		NeedsAuthSetup:  true,
		InvitationToken: &token,
	}
	people.byID[pending.ID] = pending

	cmd := NewSignupCompleteCommand(SignupCommandConfig{
		People:   people,
		Identity: &stubIdentityProvider{accountID: uuid.New()},
	})

	result := &SignupCompleteResult{}
	err := cmd.Execute(context.Background(), SignupCompleteInput{
		Email:          "invitee@example.me",
		Password:       "s3cret-passw0rd",
		PresentedToken: "stale-token",
		Result:         result,
	})

	require.NoError(t, err)
	require.True(t, result.TokenMismatch)
	require.True(t, result.Linked, "email match wins over token mismatch by default")
}

func TestSignupCompleteCommand_TokenMismatchStrictMode(t *testing.T) {
	people := newFakePersonRepo()
	token := "stored-token"
	pending := &types.Person{
		ID:              uuid.New(),
		Email:           "invitee@example.me",
		NeedsAuthSetup:  true,
		InvitationToken: &token,
	}
	people.byID[pending.ID] = pending

	cmd := NewSignupCompleteCommand(SignupCommandConfig{
		People:            people,
		Identity:          &stubIdentityProvider{accountID: uuid.New()},
		RequireTokenMatch: true,
	})

	result := &SignupCompleteResult{}
	err := cmd.Execute(context.Background(), SignupCompleteInput{
		Email:          "invitee@example.me",
		Password:       "s3cret-passw0rd",
		PresentedToken: "stale-token",
		Result:         result,
	})

	require.NoError(t, err, "the account is still created in strict mode")
	require.True(t, result.TokenMismatch)
	require.False(t, result.Linked)
	require.True(t, people.byID[pending.ID].Pending())
}

func TestSignupCompleteCommand_AlreadyConsumedPendingRow(t *testing.T) {
	people := newFakePersonRepo()
	token := "invite-token"
	pending := &types.Person{
		ID:              uuid.New(),
		Email:           "invitee@example.me",
		NeedsAuthSetup:  true,
		InvitationToken: &token,
	}
	people.byID[pending.ID] = pending
	people.linkReturnsNil = true

	cmd := NewSignupCompleteCommand(SignupCommandConfig{
		People:   people,
		Identity: &stubIdentityProvider{accountID: uuid.New()},
	})

	result := &SignupCompleteResult{}
	err := cmd.Execute(context.Background(), SignupCompleteInput{
		Email:    "invitee@example.me",
		Password: "s3cret-passw0rd",
		Result:   result,
	})

	require.NoError(t, err)
	require.False(t, result.Linked)
}

func TestQrTokenRotateCommand_RotatesAndAudits(t *testing.T) {
	people := newFakePersonRepo()
	old := "old-token"
	person := &types.Person{ID: uuid.New(), Email: "p@example.me", IsActive: true, QrCodeToken: &old}
	people.byID[person.ID] = person

	sink := &recordingAuditSink{}
	rotatedAt := time.Date(2025, 4, 1, 12, 0, 0, 0, time.UTC)
	fresh := uuid.MustParse("bbbbbbbb-0000-0000-0000-000000000001")

	cmd := NewQrTokenRotateCommand(QrRotateCommandConfig{
		People: people,
		Links:  testLinks(),
		Clock:  fixedClock{t: rotatedAt},
		IDGen:  &seqIDGenerator{ids: []uuid.UUID{fresh}},
		Audit:  sink,
	})

	result := &QrTokenRotateResult{}
	err := cmd.Execute(context.Background(), QrTokenRotateInput{
		PersonID: person.ID,
		Actor:    types.ActorRef{ID: uuid.New()},
		Result:   result,
	})

	require.NoError(t, err)
	require.Equal(t, fresh.String(), result.Token)
	require.Equal(t, "https://training.example.me/personnel-profile/"+fresh.String(), result.PublicURL)
	require.Equal(t, fresh.String(), *people.byID[person.ID].QrCodeToken)
	require.Nil(t, people.byID[person.ID].QrCodeLastAccessed)

	require.Len(t, sink.records, 1)
	require.Equal(t, AuditActionQrGenerated, sink.records[0].Action)
	require.Equal(t, fresh.String(), sink.records[0].NewData["qr_code_token"])
}

func TestQrTokenRotateCommand_UnknownPerson(t *testing.T) {
	cmd := NewQrTokenRotateCommand(QrRotateCommandConfig{
		People: newFakePersonRepo(),
		Links:  testLinks(),
	})

	err := cmd.Execute(context.Background(), QrTokenRotateInput{
		PersonID: uuid.New(),
		Actor:    types.ActorRef{ID: uuid.New()},
	})

	require.ErrorIs(t, err, ErrPersonNotFound)
}

func TestQrTokenRotateCommand_FeatureGateDisabled(t *testing.T) {
	gate := &stubFeatureGate{enabled: false}
	cmd := NewQrTokenRotateCommand(QrRotateCommandConfig{
		People:      newFakePersonRepo(),
		Links:       testLinks(),
		FeatureGate: gate,
	})

	err := cmd.Execute(context.Background(), QrTokenRotateInput{
		PersonID: uuid.New(),
		Actor:    types.ActorRef{ID: uuid.New()},
	})

	require.ErrorIs(t, err, ErrQrDisabled)
	require.Contains(t, gate.keys, "personnel.qr")
}

func TestAirportDeleteCommand_BlockedByFirstDependencyClass(t *testing.T) {
	airports := newFakeAirportRepo()
	airportID := uuid.New()
	airports.byID[airportID] = &types.Airport{ID: airportID, Name: "Podgorica"}

	cmd := NewAirportDeleteCommand(AirportDeleteCommandConfig{
		Airports:        airports,
		HasAssignments:  staticProbe(true),
		HasTrainings:    staticProbe(true),
		HasCertificates: staticProbe(false),
	})

	err := cmd.Execute(context.Background(), AirportDeleteInput{
		AirportID: airportID,
		Actor:     types.ActorRef{ID: uuid.New()},
	})

	require.True(t, types.IsConflict(err))
	require.Equal(t, TextCodeAirportHasEmployees, textCode(t, err), "assignments outrank trainings")
	require.Contains(t, airports.byID, airportID)
}

func TestAirportDeleteCommand_DeletesWhenClear(t *testing.T) {
	airports := newFakeAirportRepo()
	airportID := uuid.New()
	airports.byID[airportID] = &types.Airport{ID: airportID, Name: "Tivat"}

	cmd := NewAirportDeleteCommand(AirportDeleteCommandConfig{
		Airports:        airports,
		HasAssignments:  staticProbe(false),
		HasTrainings:    staticProbe(false),
		HasCertificates: staticProbe(false),
	})

	err := cmd.Execute(context.Background(), AirportDeleteInput{
		AirportID: airportID,
		Actor:     types.ActorRef{ID: uuid.New()},
	})

	require.NoError(t, err)
	require.NotContains(t, airports.byID, airportID)
}

func TestProgramSaveCommand_NormalizesAndDefaults(t *testing.T) {
	programs := newFakeProgramRepo()
	cmd := NewProgramSaveCommand(ProgramSaveCommandConfig{Programs: programs})

	result := &ProgramSaveResult{}
	err := cmd.Execute(context.Background(), ProgramSaveInput{
		Program: types.TrainingProgram{
			Title: "  Ramp Safety  ",
			Code:  "rs-101",
		},
		Actor:  types.ActorRef{ID: uuid.New()},
		Result: result,
	})

	require.NoError(t, err)
	require.Equal(t, "Ramp Safety", result.Program.Title)
	require.Equal(t, "RS-101", result.Program.Code)
	require.Equal(t, "1.0", result.Program.Version)
	require.Equal(t, 24, result.Program.ValidityMonths)
}

func TestProgramSaveCommand_DuplicateCode(t *testing.T) {
	programs := newFakeProgramRepo()
	existing := &types.TrainingProgram{ID: uuid.New(), Title: "Ramp Safety", Code: "RS-101"}
	programs.byID[existing.ID] = existing

	cmd := NewProgramSaveCommand(ProgramSaveCommandConfig{Programs: programs})

	err := cmd.Execute(context.Background(), ProgramSaveInput{
		Program: types.TrainingProgram{Title: "Other", Code: "rs-101"},
		Actor:   types.ActorRef{ID: uuid.New()},
	})

	require.True(t, types.IsConflict(err))
	require.Equal(t, types.TextCodeProgramCodeTaken, textCode(t, err))
}

func TestProgramSaveCommand_UpdateKeepsOwnCode(t *testing.T) {
	programs := newFakeProgramRepo()
	existing := &types.TrainingProgram{ID: uuid.New(), Title: "Ramp Safety", Code: "RS-101", Version: "2.0", ValidityMonths: 12}
	programs.byID[existing.ID] = existing

	cmd := NewProgramSaveCommand(ProgramSaveCommandConfig{Programs: programs})

	err := cmd.Execute(context.Background(), ProgramSaveInput{
		Program: types.TrainingProgram{ID: existing.ID, Title: "Ramp Safety v2", Code: "RS-101", Version: "2.0", ValidityMonths: 12},
		Actor:   types.ActorRef{ID: uuid.New()},
	})

	require.NoError(t, err, "updating a program with its own code is not a conflict")
}

func TestCertificateIssueCommand_DerivesExpiryFromProgram(t *testing.T) {
	programs := newFakeProgramRepo()
	program := &types.TrainingProgram{ID: uuid.New(), Title: "Ramp Safety", Code: "RS-101", ValidityMonths: 36}
	programs.byID[program.ID] = program

	airportID := uuid.New()
	trainings := newFakeTrainingRepo()
	training := &types.Training{
		ID:                uuid.New(),
		TrainingProgramID: program.ID,
		TraineeID:         uuid.New(),
		AirportID:         &airportID,
		Status:            types.TrainingStatusCompleted,
	}
	trainings.byID[training.ID] = training

	certs := newFakeCertificateRepo()
	issuedAt := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)

	cmd := NewCertificateIssueCommand(CertificateIssueCommandConfig{
		Certificates: certs,
		Trainings:    trainings,
		Programs:     programs,
		Clock:        fixedClock{t: issuedAt},
	})

	result := &CertificateIssueResult{}
	err := cmd.Execute(context.Background(), CertificateIssueInput{
		TrainingID:        training.ID,
		CertificateNumber: "CERT-2025-0001",
		Actor:             types.ActorRef{ID: uuid.New()},
		Result:            result,
	})

	require.NoError(t, err)
	require.Equal(t, training.TraineeID, result.Certificate.TraineeID)
	require.Equal(t, airportID, *result.Certificate.AirportID)
	require.Equal(t, issuedAt, result.Certificate.IssueDate)
	require.Equal(t, issuedAt.AddDate(0, 36, 0), result.Certificate.ExpiryDate)
	require.Equal(t, types.CertificateStatusValid, result.Certificate.Status)
}

func TestCertificateIssueCommand_DuplicateNumber(t *testing.T) {
	trainings := newFakeTrainingRepo()
	training := &types.Training{ID: uuid.New(), TrainingProgramID: uuid.New(), TraineeID: uuid.New()}
	trainings.byID[training.ID] = training

	certs := newFakeCertificateRepo()
	certs.byNumber["CERT-2025-0001"] = &types.Certificate{ID: uuid.New(), CertificateNumber: "CERT-2025-0001"}

	cmd := NewCertificateIssueCommand(CertificateIssueCommandConfig{
		Certificates: certs,
		Trainings:    trainings,
	})

	err := cmd.Execute(context.Background(), CertificateIssueInput{
		TrainingID:        training.ID,
		CertificateNumber: "CERT-2025-0001",
		Actor:             types.ActorRef{ID: uuid.New()},
	})

	require.True(t, types.IsConflict(err))
	require.Equal(t, types.TextCodeCertNumberTaken, textCode(t, err))
}

func TestPersonDeactivateCommand_RejectsPendingRecords(t *testing.T) {
	people := newFakePersonRepo()
	token := "invite-token"
	pending := &types.Person{ID: uuid.New(), Email: "pending@example.me", NeedsAuthSetup: true, InvitationToken: &token}
	people.byID[pending.ID] = pending

	cmd := NewPersonDeactivateCommand(PersonDeactivateCommandConfig{People: people})

	err := cmd.Execute(context.Background(), PersonDeactivateInput{
		PersonID: pending.ID,
		Actor:    types.ActorRef{ID: uuid.New()},
	})

	require.Error(t, err)
	require.Equal(t, "INVALID_PERSON_ID", textCode(t, err))
}

func TestPersonDeactivateCommand_DeactivatesActivePerson(t *testing.T) {
	people := newFakePersonRepo()
	person := &types.Person{ID: uuid.New(), Email: "active@example.me", IsActive: true}
	people.byID[person.ID] = person
	sink := &recordingAuditSink{}

	cmd := NewPersonDeactivateCommand(PersonDeactivateCommandConfig{People: people, Audit: sink})

	err := cmd.Execute(context.Background(), PersonDeactivateInput{
		PersonID: person.ID,
		Actor:    types.ActorRef{ID: uuid.New()},
	})

	require.NoError(t, err)
	require.False(t, people.byID[person.ID].IsActive)
	require.Len(t, sink.records, 1)
	require.Equal(t, AuditActionPersonDeactivated, sink.records[0].Action)
}

func TestExamGradeCommand_RecordsOutcome(t *testing.T) {
	exams := newFakeExamRepo()
	exam := &types.Examination{ID: uuid.New(), TrainingID: uuid.New(), Status: types.ExamStatusScheduled}
	exams.byID[exam.ID] = exam
	score := 87.5

	cmd := NewExamGradeCommand(ExamGradeCommandConfig{Examinations: exams})

	err := cmd.Execute(context.Background(), ExamGradeInput{
		ExamID: exam.ID,
		Status: types.ExamStatusPassed,
		Score:  &score,
		Notes:  "solid written exam",
		Actor:  types.ActorRef{ID: uuid.New()},
	})

	require.NoError(t, err)
	require.Equal(t, types.ExamStatusPassed, exams.byID[exam.ID].Status)
	require.Equal(t, score, *exams.byID[exam.ID].Score)
}

func TestExamGradeCommand_RejectsOutOfRangeScore(t *testing.T) {
	exams := newFakeExamRepo()
	exam := &types.Examination{ID: uuid.New(), TrainingID: uuid.New(), Status: types.ExamStatusScheduled}
	exams.byID[exam.ID] = exam
	score := 140.0

	cmd := NewExamGradeCommand(ExamGradeCommandConfig{Examinations: exams})

	err := cmd.Execute(context.Background(), ExamGradeInput{
		ExamID: exam.ID,
		Status: types.ExamStatusPassed,
		Score:  &score,
		Actor:  types.ActorRef{ID: uuid.New()},
	})

	require.Error(t, err)
	require.Equal(t, "INVALID_SCORE", textCode(t, err))
}

func textCode(t *testing.T, err error) string {
	t.Helper()
	var rich *goerrors.Error
	require.True(t, goerrors.As(err, &rich), "expected a categorized error, got %v", err)
	return rich.TextCode
}

func staticProbe(exists bool) ExistenceProbe {
	return func(context.Context, uuid.UUID) (bool, error) {
		return exists, nil
	}
}

// --- Test helpers ---

type fakePersonRepo struct {
	byID           map[uuid.UUID]*types.Person
	createErr      error
	linkReturnsNil bool
}

func newFakePersonRepo() *fakePersonRepo {
	return &fakePersonRepo{byID: map[uuid.UUID]*types.Person{}}
}

func (f *fakePersonRepo) GetByID(_ context.Context, id uuid.UUID) (*types.Person, error) {
	return f.byID[id], nil
}

func (f *fakePersonRepo) GetByEmail(_ context.Context, email string) (*types.Person, error) {
	for _, person := range f.byID {
		if strings.EqualFold(person.Email, email) {
			return person, nil
		}
	}
	return nil, nil
}

func (f *fakePersonRepo) GetPendingByEmail(ctx context.Context, email string) (*types.Person, error) {
	person, err := f.GetByEmail(ctx, email)
	if err != nil || person == nil || !person.Pending() {
		return nil, err
	}
	return person, nil
}

func (f *fakePersonRepo) GetByQrToken(_ context.Context, token string) (*types.Person, error) {
	for _, person := range f.byID {
		if person.QrCodeToken != nil && *person.QrCodeToken == token {
			return person, nil
		}
	}
	return nil, nil
}

func (f *fakePersonRepo) Create(_ context.Context, person *types.Person) (*types.Person, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	copy := *person
	f.byID[copy.ID] = &copy
	return &copy, nil
}

func (f *fakePersonRepo) Update(_ context.Context, person *types.Person) (*types.Person, error) {
	copy := *person
	f.byID[copy.ID] = &copy
	return &copy, nil
}

func (f *fakePersonRepo) LinkAccount(_ context.Context, pendingID uuid.UUID, link types.AccountLink) (*types.Person, error) {
	if f.linkReturnsNil {
		return nil, nil
	}
	person, ok := f.byID[pendingID]
	if !ok || !person.Pending() {
		return nil, nil
	}
	delete(f.byID, pendingID)
	linked := *person
	linked.ID = link.AccountID
	linked.IsActive = true
	linked.NeedsAuthSetup = false
	linked.InvitationToken = nil
	linkedAt := link.LinkedAt
	linked.AuthUserLinkedAt = &linkedAt
	f.byID[linked.ID] = &linked
	return &linked, nil
}

func (f *fakePersonRepo) RotateQrToken(_ context.Context, personID uuid.UUID, token string, _ time.Time) (*types.Person, error) {
	person, ok := f.byID[personID]
	if !ok {
		return nil, nil
	}
	person.QrCodeToken = &token
	person.QrCodeLastAccessed = nil
	return person, nil
}

func (f *fakePersonRepo) TouchQrAccess(_ context.Context, personID uuid.UUID, accessedAt time.Time) error {
	if person, ok := f.byID[personID]; ok {
		person.QrCodeLastAccessed = &accessedAt
	}
	return nil
}

func (f *fakePersonRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(f.byID, id)
	return nil
}

func (f *fakePersonRepo) ListPersonnel(context.Context, types.PersonnelFilter) (types.PersonnelPage, error) {
	return types.PersonnelPage{}, nil
}

func (f *fakePersonRepo) CountByCategory(context.Context) ([]types.CategoryCount, error) {
	return nil, nil
}

type fakeAssignmentRepo struct {
	created   []types.Assignment
	createErr error
}

func newFakeAssignmentRepo() *fakeAssignmentRepo {
	return &fakeAssignmentRepo{}
}

func (f *fakeAssignmentRepo) Create(_ context.Context, assignment types.Assignment) (*types.Assignment, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.created = append(f.created, assignment)
	return &assignment, nil
}

func (f *fakeAssignmentRepo) ListByEmployee(context.Context, uuid.UUID) ([]types.Assignment, error) {
	return nil, nil
}

func (f *fakeAssignmentRepo) ListByAirport(context.Context, uuid.UUID) ([]types.Assignment, error) {
	return nil, nil
}

func (f *fakeAssignmentRepo) Delete(context.Context, uuid.UUID, uuid.UUID) error {
	return nil
}

type fakeAirportRepo struct {
	byID map[uuid.UUID]*types.Airport
}

func newFakeAirportRepo() *fakeAirportRepo {
	return &fakeAirportRepo{byID: map[uuid.UUID]*types.Airport{}}
}

func (f *fakeAirportRepo) GetByID(_ context.Context, id uuid.UUID) (*types.Airport, error) {
	return f.byID[id], nil
}

func (f *fakeAirportRepo) Create(_ context.Context, airport *types.Airport) (*types.Airport, error) {
	f.byID[airport.ID] = airport
	return airport, nil
}

func (f *fakeAirportRepo) Update(_ context.Context, airport *types.Airport) (*types.Airport, error) {
	f.byID[airport.ID] = airport
	return airport, nil
}

func (f *fakeAirportRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(f.byID, id)
	return nil
}

func (f *fakeAirportRepo) List(context.Context, types.AirportFilter) (types.AirportPage, error) {
	return types.AirportPage{}, nil
}

type fakeProgramRepo struct {
	byID map[uuid.UUID]*types.TrainingProgram
}

func newFakeProgramRepo() *fakeProgramRepo {
	return &fakeProgramRepo{byID: map[uuid.UUID]*types.TrainingProgram{}}
}

func (f *fakeProgramRepo) GetByID(_ context.Context, id uuid.UUID) (*types.TrainingProgram, error) {
	return f.byID[id], nil
}

func (f *fakeProgramRepo) GetByCode(_ context.Context, code string) (*types.TrainingProgram, error) {
	for _, program := range f.byID {
		if program.Code == code {
			return program, nil
		}
	}
	return nil, nil
}

func (f *fakeProgramRepo) Create(_ context.Context, program *types.TrainingProgram) (*types.TrainingProgram, error) {
	copy := *program
	if copy.ID == uuid.Nil {
		copy.ID = uuid.New()
	}
	copy.TotalHours = copy.TheoreticalHours + copy.PracticalHours + copy.OjtHours
	f.byID[copy.ID] = &copy
	return &copy, nil
}

func (f *fakeProgramRepo) Update(_ context.Context, program *types.TrainingProgram) (*types.TrainingProgram, error) {
	copy := *program
	copy.TotalHours = copy.TheoreticalHours + copy.PracticalHours + copy.OjtHours
	f.byID[copy.ID] = &copy
	return &copy, nil
}

func (f *fakeProgramRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(f.byID, id)
	return nil
}

func (f *fakeProgramRepo) List(context.Context, types.ProgramFilter) (types.ProgramPage, error) {
	return types.ProgramPage{}, nil
}

type fakeTrainingRepo struct {
	byID map[uuid.UUID]*types.Training
}

func newFakeTrainingRepo() *fakeTrainingRepo {
	return &fakeTrainingRepo{byID: map[uuid.UUID]*types.Training{}}
}

func (f *fakeTrainingRepo) GetByID(_ context.Context, id uuid.UUID) (*types.Training, error) {
	return f.byID[id], nil
}

func (f *fakeTrainingRepo) Create(_ context.Context, training *types.Training) (*types.Training, error) {
	copy := *training
	if copy.ID == uuid.Nil {
		copy.ID = uuid.New()
	}
	f.byID[copy.ID] = &copy
	return &copy, nil
}

func (f *fakeTrainingRepo) Update(_ context.Context, training *types.Training) (*types.Training, error) {
	copy := *training
	f.byID[copy.ID] = &copy
	return &copy, nil
}

func (f *fakeTrainingRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(f.byID, id)
	return nil
}

func (f *fakeTrainingRepo) ListByTrainee(context.Context, uuid.UUID) ([]types.Training, error) {
	return nil, nil
}

func (f *fakeTrainingRepo) ListByProgram(context.Context, uuid.UUID) ([]types.Training, error) {
	return nil, nil
}

type fakeCertificateRepo struct {
	byID     map[uuid.UUID]*types.Certificate
	byNumber map[string]*types.Certificate
}

func newFakeCertificateRepo() *fakeCertificateRepo {
	return &fakeCertificateRepo{
		byID:     map[uuid.UUID]*types.Certificate{},
		byNumber: map[string]*types.Certificate{},
	}
}

func (f *fakeCertificateRepo) GetByID(_ context.Context, id uuid.UUID) (*types.Certificate, error) {
	return f.byID[id], nil
}

func (f *fakeCertificateRepo) GetByNumber(_ context.Context, number string) (*types.Certificate, error) {
	return f.byNumber[number], nil
}

func (f *fakeCertificateRepo) Create(_ context.Context, cert *types.Certificate) (*types.Certificate, error) {
	copy := *cert
	if copy.ID == uuid.Nil {
		copy.ID = uuid.New()
	}
	f.byID[copy.ID] = &copy
	f.byNumber[copy.CertificateNumber] = &copy
	return &copy, nil
}

func (f *fakeCertificateRepo) Update(_ context.Context, cert *types.Certificate) (*types.Certificate, error) {
	copy := *cert
	f.byID[copy.ID] = &copy
	f.byNumber[copy.CertificateNumber] = &copy
	return &copy, nil
}

func (f *fakeCertificateRepo) ListByTrainee(context.Context, uuid.UUID) ([]types.Certificate, error) {
	return nil, nil
}

type fakeExamRepo struct {
	byID map[uuid.UUID]*types.Examination
}

func newFakeExamRepo() *fakeExamRepo {
	return &fakeExamRepo{byID: map[uuid.UUID]*types.Examination{}}
}

func (f *fakeExamRepo) GetByID(_ context.Context, id uuid.UUID) (*types.Examination, error) {
	return f.byID[id], nil
}

func (f *fakeExamRepo) Create(_ context.Context, exam *types.Examination) (*types.Examination, error) {
	copy := *exam
	if copy.ID == uuid.Nil {
		copy.ID = uuid.New()
	}
	f.byID[copy.ID] = &copy
	return &copy, nil
}

func (f *fakeExamRepo) Update(_ context.Context, exam *types.Examination) (*types.Examination, error) {
	copy := *exam
	f.byID[copy.ID] = &copy
	return &copy, nil
}

func (f *fakeExamRepo) ListByTraining(context.Context, uuid.UUID) ([]types.Examination, error) {
	return nil, nil
}

type stubIdentityProvider struct {
	accountID uuid.UUID
	createErr error
	created   []string
}

func (s *stubIdentityProvider) CreateAccount(_ context.Context, email, _ string) (uuid.UUID, error) {
	if s.createErr != nil {
		return uuid.Nil, s.createErr
	}
	s.created = append(s.created, email)
	if s.accountID == uuid.Nil {
		s.accountID = uuid.New()
	}
	return s.accountID, nil
}

func (s *stubIdentityProvider) AccountExists(_ context.Context, email string) (bool, error) {
	for _, existing := range s.created {
		if strings.EqualFold(existing, email) {
			return true, nil
		}
	}
	return false, nil
}

type recordingAuditSink struct {
	records []types.AuditRecord
}

func (r *recordingAuditSink) Log(_ context.Context, record types.AuditRecord) error {
	r.records = append(r.records, record)
	return nil
}

type fixedClock struct {
	t time.Time
}

func (f fixedClock) Now() time.Time {
	return f.t
}

type seqIDGenerator struct {
	ids  []uuid.UUID
	next int
}

func (s *seqIDGenerator) UUID() uuid.UUID {
	if s.next >= len(s.ids) {
		return uuid.New()
	}
	id := s.ids[s.next]
	s.next++
	return id
}

type stubSecureLinks struct {
	link    string
	err     error
	route   string
	payload types.SecureLinkPayload
}

func (s *stubSecureLinks) Generate(route string, payloads ...types.SecureLinkPayload) (string, error) {
	s.route = route
	if len(payloads) > 0 {
		s.payload = payloads[0]
	}
	if s.err != nil {
		return "", s.err
	}
	return s.link, nil
}

func (s *stubSecureLinks) Validate(string) (map[string]any, error) {
	return nil, errors.New("not implemented")
}

func (s *stubSecureLinks) GetAndValidate(func(string) string) (types.SecureLinkPayload, error) {
	return nil, errors.New("not implemented")
}

func (s *stubSecureLinks) GetExpiration() time.Duration { return 0 }

type stubFeatureGate struct {
	enabled bool
	err     error
	keys    []string
}

func (s *stubFeatureGate) Enabled(_ context.Context, key string, _ ...featuregate.ResolveOption) (bool, error) {
	s.keys = append(s.keys, key)
	if s.err != nil {
		return false, s.err
	}
	return s.enabled, nil
}
