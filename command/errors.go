package command

import (
	"errors"

	"github.com/goliatone/go-trainops/pkg/types"
)

var (
	// ErrActorRequired indicates an actor reference was not supplied.
	ErrActorRequired = types.ErrActorRequired
	// ErrPersonIDRequired occurs when a command omits the target person.
	ErrPersonIDRequired = types.ErrPersonIDRequired
	// ErrPersonNotFound indicates the requested personnel record was not found.
	ErrPersonNotFound = errors.New("go-trainops: person not found")
	// ErrOnboardEmailRequired occurs when an onboarding call omits the email.
	ErrOnboardEmailRequired = errors.New("go-trainops: onboarding requires email")
	// ErrInviteDisabled indicates the invite flow is disabled via feature gate.
	ErrInviteDisabled = errors.New("go-trainops: personnel invite disabled")
	// ErrQrDisabled indicates QR token issuance is disabled via feature gate.
	ErrQrDisabled = errors.New("go-trainops: qr token issuance disabled")
	// ErrSignupEmailRequired occurs when signup omits the email.
	ErrSignupEmailRequired = errors.New("go-trainops: signup requires email")
	// ErrSignupPasswordRequired occurs when signup omits the password.
	ErrSignupPasswordRequired = errors.New("go-trainops: signup requires password")
	// ErrAirportIDRequired occurs when airport commands omit the facility id.
	ErrAirportIDRequired = errors.New("go-trainops: airport id required")
	// ErrAirportNotFound indicates the airport facility was not found.
	ErrAirportNotFound = errors.New("go-trainops: airport not found")
	// ErrProgramRequired occurs when a program save omits the payload.
	ErrProgramRequired = errors.New("go-trainops: program payload required")
	// ErrProgramTitleRequired occurs when a program save omits the title.
	ErrProgramTitleRequired = errors.New("go-trainops: program title required")
	// ErrProgramCodeRequired occurs when a program save omits the code.
	ErrProgramCodeRequired = errors.New("go-trainops: program code required")
	// ErrProgramIDRequired occurs when program deletion omits the id.
	ErrProgramIDRequired = errors.New("go-trainops: program id required")
	// ErrProgramNotFound indicates the training program was not found.
	ErrProgramNotFound = errors.New("go-trainops: training program not found")
	// ErrCategoryIDRequired occurs when category deletion omits the id.
	ErrCategoryIDRequired = errors.New("go-trainops: job category id required")
	// ErrCategoryNotFound indicates the job category was not found.
	ErrCategoryNotFound = errors.New("go-trainops: job category not found")
	// ErrTrainingIDRequired occurs when a command omits the training id.
	ErrTrainingIDRequired = errors.New("go-trainops: training id required")
	// ErrTrainingNotFound indicates the training was not found.
	ErrTrainingNotFound = errors.New("go-trainops: training not found")
	// ErrTrainingProgramIDRequired occurs when scheduling omits the program.
	ErrTrainingProgramIDRequired = errors.New("go-trainops: training program id required")
	// ErrTraineeIDRequired occurs when scheduling omits the trainee.
	ErrTraineeIDRequired = errors.New("go-trainops: trainee id required")
	// ErrExamIDRequired occurs when grading omits the examination id.
	ErrExamIDRequired = errors.New("go-trainops: examination id required")
	// ErrExamNotFound indicates the examination was not found.
	ErrExamNotFound = errors.New("go-trainops: examination not found")
	// ErrExamOutcomeRequired occurs when grading omits the pass/fail outcome.
	ErrExamOutcomeRequired = errors.New("go-trainops: examination outcome required")
	// ErrCertificateNumberRequired occurs when issuance omits the number.
	ErrCertificateNumberRequired = errors.New("go-trainops: certificate number required")
)
