package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"alfredoptarigan/ai-mentorship/internal/identity"
	"alfredoptarigan/ai-mentorship/internal/models"
	"alfredoptarigan/ai-mentorship/internal/repositories"
)

type State string

const (
	StateProfiling  State = "profiling"
	StateAssessment State = "assessment"
	StateAnalyzing  State = "analyzing"
	StateResults    State = "results"
)

var (
	ErrBusy          = errors.New("a request is already in flight")
	ErrInvalidState  = errors.New("operation not allowed in current state")
	ErrEmptyAnswer   = errors.New("answer must not be empty")
	ErrUnknownOption = errors.New("option is not offered by the current question")
	ErrSessionFailed = errors.New("session failed, start over")
	ErrNotReady      = errors.New("current question has not been answered")
	ErrNoResults     = errors.New("no stored assessment results")
)

// API is the question and analysis backend a session talks to. The server
// side service and the HTTP client both satisfy it.
type API interface {
	GenerateQuestions(ctx context.Context, profile models.UserProfile) ([]models.Question, error)
	NextQuestion(ctx context.Context, profile models.UserProfile, responses []models.Response, index int) (models.Question, error)
	Analyze(ctx context.Context, profile models.UserProfile, responses []models.Response) (*models.AnalysisResult, error)
}

// Draft is the stored answer for the current question, for prefilling input
// when the user navigates back.
type Draft struct {
	Choice    string
	OtherText string
	Text      string
}

// Session drives one assessment from profile intake to stored results.
// Methods are safe for concurrent use; while a backend call is outstanding
// every mutating method returns ErrBusy.
type Session struct {
	id       string
	api      API
	store    repositories.LocalStore
	identity identity.Provider
	logger   *zap.Logger

	mu           sync.Mutex
	epoch        int
	state        State
	profileStep  int
	profile      models.UserProfile
	questions    []models.Question
	responses    []models.Response
	current      int
	pendingOther bool
	loading      bool
	failure      error
	lastErr      error
	result       *models.AnalysisResult
}

func New(api API, store repositories.LocalStore, ident identity.Provider, logger *zap.Logger) *Session {
	s := &Session{
		api:      api,
		store:    store,
		identity: ident,
		logger:   logger,
	}
	s.resetLocked()
	return s
}

func (s *Session) ID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.id
}

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Session) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// Err is the failure that stopped the session, if any. Only Reset clears it.
func (s *Session) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.failure
}

// LastError is the most recent analysis failure. Finish may be retried.
func (s *Session) LastError() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

func (s *Session) Profile() models.UserProfile {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.profile
}

func (s *Session) Questions() []models.Question {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Question(nil), s.questions...)
}

func (s *Session) Responses() []models.Response {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Response(nil), s.responses...)
}

func (s *Session) CurrentIndex() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

func (s *Session) Result() *models.AnalysisResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.result
}

// CurrentProfileQuestion is the intake question awaiting an answer.
func (s *Session) CurrentProfileQuestion() (ProfileQuestion, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateProfiling || s.profileStep >= len(ProfileQuestions) {
		return ProfileQuestion{}, false
	}
	return ProfileQuestions[s.profileStep], true
}

func (s *Session) CurrentQuestion() (models.Question, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current >= len(s.questions) {
		return models.Question{}, false
	}
	return s.questions[s.current], true
}

// PendingOther reports whether the Other choice is selected and waiting for
// its free text.
func (s *Session) PendingOther() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pendingOther
}

// Draft returns what was previously answered for the current question.
func (s *Session) Draft() Draft {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current >= len(s.questions) {
		return Draft{}
	}
	q := s.questions[s.current]
	r, ok := s.responseForLocked(q.ID)
	if !ok {
		return Draft{}
	}
	if !q.IsMultipleChoice() {
		return Draft{Text: r.Answer}
	}
	if text, ok := strings.CutPrefix(r.Answer, otherPrefix); ok {
		return Draft{Choice: OtherOption, OtherText: text}
	}
	return Draft{Choice: r.Answer}
}

func (s *Session) StatusLabel() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.responses) >= models.MaxResponses {
		return "Ready to finish!"
	}
	return fmt.Sprintf("%d questions remaining", models.MaxResponses-len(s.responses))
}

func (s *Session) ActionLabel() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch {
	case s.loading:
		return "Loading..."
	case len(s.responses) >= models.MaxResponses:
		return "Finish Assessment"
	default:
		return "Next"
	}
}

func (s *Session) ProgressLabel() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fmt.Sprintf("%d of %d questions", min(s.current+1, models.MaxResponses), models.MaxResponses)
}

// AnswerProfile records the answer to the current intake question. otherText
// is required when answer is the Other option. The third answer starts the
// assessment and blocks until the opening questions arrive.
func (s *Session) AnswerProfile(ctx context.Context, answer, otherText string) error {
	s.mu.Lock()
	if err := s.guardLocked(StateProfiling); err != nil {
		s.mu.Unlock()
		return err
	}

	pq := ProfileQuestions[s.profileStep]
	if !containsOption(pq.Options, answer) {
		s.mu.Unlock()
		return fmt.Errorf("%w: %q", ErrUnknownOption, answer)
	}
	if IsOtherOption(answer) {
		otherText = strings.TrimSpace(otherText)
		if otherText == "" {
			s.mu.Unlock()
			return ErrEmptyAnswer
		}
		answer = otherAnswer(otherText)
	}

	switch pq.Field {
	case "lifeStage":
		s.profile.LifeStage = answer
	case "field":
		s.profile.Field = answer
	case "goal":
		s.profile.Goal = answer
	}

	s.profileStep++
	if s.profileStep < len(ProfileQuestions) {
		s.mu.Unlock()
		return nil
	}

	s.state = StateAssessment
	step := s.beginInitialFetchLocked()
	s.mu.Unlock()

	return step(ctx)
}

// SelectChoice answers a multiple choice question. Choosing the Other option
// only marks it pending; SubmitOther commits it.
func (s *Session) SelectChoice(ctx context.Context, option string) error {
	s.mu.Lock()
	q, err := s.currentForAnswerLocked()
	if err != nil {
		s.mu.Unlock()
		return err
	}
	if !q.IsMultipleChoice() {
		s.mu.Unlock()
		return fmt.Errorf("%w: question %d takes free text", ErrInvalidState, q.ID)
	}
	if !containsOption(q.Options, option) {
		s.mu.Unlock()
		return fmt.Errorf("%w: %q", ErrUnknownOption, option)
	}

	if IsOtherOption(option) {
		s.pendingOther = true
		s.mu.Unlock()
		return nil
	}

	return s.commitLocked(ctx, q, option)
}

// SubmitOther commits the free text for a pending Other choice.
func (s *Session) SubmitOther(ctx context.Context, text string) error {
	s.mu.Lock()
	q, err := s.currentForAnswerLocked()
	if err != nil {
		s.mu.Unlock()
		return err
	}
	if !s.pendingOther {
		s.mu.Unlock()
		return fmt.Errorf("%w: no Other choice selected", ErrInvalidState)
	}
	text = strings.TrimSpace(text)
	if text == "" {
		s.mu.Unlock()
		return ErrEmptyAnswer
	}

	return s.commitLocked(ctx, q, otherAnswer(text))
}

// SubmitText answers a free-text question.
func (s *Session) SubmitText(ctx context.Context, text string) error {
	s.mu.Lock()
	q, err := s.currentForAnswerLocked()
	if err != nil {
		s.mu.Unlock()
		return err
	}
	if q.IsMultipleChoice() {
		s.mu.Unlock()
		return fmt.Errorf("%w: question %d is multiple choice", ErrInvalidState, q.ID)
	}
	text = strings.TrimSpace(text)
	if text == "" {
		s.mu.Unlock()
		return ErrEmptyAnswer
	}

	return s.commitLocked(ctx, q, text)
}

// Next is the primary navigation action. With enough responses it finishes
// the assessment; otherwise the current question must already be answered.
func (s *Session) Next(ctx context.Context) error {
	s.mu.Lock()
	q, err := s.currentForAnswerLocked()
	if err != nil {
		s.mu.Unlock()
		return err
	}
	if len(s.responses) >= models.MaxResponses {
		step := s.beginFinishLocked()
		s.mu.Unlock()
		return step(ctx)
	}
	if _, ok := s.responseForLocked(q.ID); !ok {
		s.mu.Unlock()
		return ErrNotReady
	}

	step := s.planAdvanceLocked()
	s.mu.Unlock()
	return step(ctx)
}

// Previous steps back one question. Responses are kept.
func (s *Session) Previous() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.guardLocked(StateAssessment); err != nil {
		return err
	}
	if s.current > 0 {
		s.current--
		s.pendingOther = false
	}
	return nil
}

// Finish requests the analysis. It fails with ErrNotReady until enough
// responses exist.
func (s *Session) Finish(ctx context.Context) error {
	s.mu.Lock()
	if err := s.guardLocked(StateAssessment); err != nil {
		s.mu.Unlock()
		return err
	}
	if len(s.responses) < models.MaxResponses {
		s.mu.Unlock()
		return fmt.Errorf("%w: %d of %d responses", ErrNotReady, len(s.responses), models.MaxResponses)
	}

	step := s.beginFinishLocked()
	s.mu.Unlock()
	return step(ctx)
}

// Reset discards all in-memory state and starts over at profile intake. A
// call still in flight completes into the void.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.resetLocked()
}

func (s *Session) resetLocked() {
	s.epoch++
	s.id = uuid.NewString()
	s.state = StateProfiling
	s.profileStep = 0
	s.profile = models.UserProfile{}
	if s.identity != nil {
		if u := s.identity.CurrentUser(); u != nil {
			s.profile.Name = u.FirstName
			s.profile.Email = u.Email
		}
	}
	s.questions = nil
	s.responses = nil
	s.current = 0
	s.pendingOther = false
	s.loading = false
	s.failure = nil
	s.lastErr = nil
	s.result = nil
}

func (s *Session) guardLocked(want State) error {
	switch {
	case s.failure != nil:
		return fmt.Errorf("%w: %v", ErrSessionFailed, s.failure)
	case s.loading:
		return ErrBusy
	case s.state != want:
		return fmt.Errorf("%w: %s", ErrInvalidState, s.state)
	}
	return nil
}

func (s *Session) currentForAnswerLocked() (models.Question, error) {
	if err := s.guardLocked(StateAssessment); err != nil {
		return models.Question{}, err
	}
	if s.current >= len(s.questions) {
		return models.Question{}, fmt.Errorf("%w: no question loaded", ErrInvalidState)
	}
	return s.questions[s.current], nil
}

func (s *Session) responseForLocked(id int) (models.Response, bool) {
	for _, r := range s.responses {
		if r.QuestionID == id {
			return r, true
		}
	}
	return models.Response{}, false
}

// upsertLocked keeps at most one response per question id.
func (s *Session) upsertLocked(r models.Response) {
	for i := range s.responses {
		if s.responses[i].QuestionID == r.QuestionID {
			s.responses[i] = r
			return
		}
	}
	s.responses = append(s.responses, r)
}

// commitLocked is entered with s.mu held and returns with it released.
func (s *Session) commitLocked(ctx context.Context, q models.Question, answer string) error {
	s.upsertLocked(models.Response{QuestionID: q.ID, Question: q.Question, Answer: answer})
	s.pendingOther = false
	step := s.planAdvanceLocked()
	s.mu.Unlock()
	return step(ctx)
}

// planAdvanceLocked moves past the current question. Work that needs the
// backend is returned as a step to run after the lock is released.
func (s *Session) planAdvanceLocked() func(context.Context) error {
	switch {
	case s.current < len(s.questions)-1:
		s.current++
		return noop
	case len(s.responses) < models.MaxResponses:
		return s.beginNextFetchLocked()
	default:
		return s.beginFinishLocked()
	}
}

func noop(context.Context) error { return nil }

func (s *Session) beginInitialFetchLocked() func(context.Context) error {
	s.loading = true
	epoch := s.epoch
	profile := s.profile
	s.logger.Info("starting assessment", zap.String("session", s.id), zap.String("life_stage", profile.LifeStage))

	return func(ctx context.Context) error {
		questions, err := s.api.GenerateQuestions(ctx, profile)
		if err == nil && len(questions) == 0 {
			err = errors.New("no valid questions received")
		}

		s.mu.Lock()
		defer s.mu.Unlock()
		if s.epoch != epoch {
			return nil
		}
		s.loading = false
		if err != nil {
			s.failure = fmt.Errorf("failed to start assessment: %w", err)
			s.logger.Error("failed to start assessment", zap.String("session", s.id), zap.Error(err))
			return s.failure
		}

		s.questions = questions
		s.current = 0
		return nil
	}
}

func (s *Session) beginNextFetchLocked() func(context.Context) error {
	s.loading = true
	epoch := s.epoch
	profile := s.profile
	responses := append([]models.Response(nil), s.responses...)
	index := len(s.questions)

	return func(ctx context.Context) error {
		question, err := s.api.NextQuestion(ctx, profile, responses, index)

		s.mu.Lock()
		defer s.mu.Unlock()
		if s.epoch != epoch {
			return nil
		}
		s.loading = false
		if err != nil {
			s.failure = fmt.Errorf("failed to get next question: %w", err)
			s.logger.Error("failed to get next question", zap.String("session", s.id), zap.Int("index", index), zap.Error(err))
			return s.failure
		}

		question.ID = index + 1
		s.questions = append(s.questions, question)
		s.current = len(s.questions) - 1
		return nil
	}
}

func (s *Session) beginFinishLocked() func(context.Context) error {
	s.state = StateAnalyzing
	s.loading = true
	s.lastErr = nil
	epoch := s.epoch
	profile := s.profile
	responses := append([]models.Response(nil), s.responses...)
	s.logger.Info("analyzing assessment", zap.String("session", s.id), zap.Int("responses", len(responses)))

	return func(ctx context.Context) error {
		result, err := s.api.Analyze(ctx, profile, responses)

		s.mu.Lock()
		defer s.mu.Unlock()
		if s.epoch != epoch {
			return nil
		}
		// Only the live run writes to the store.
		if err == nil {
			err = s.persist(ctx, result, profile)
		}
		s.loading = false
		if err != nil {
			s.state = StateAssessment
			s.lastErr = fmt.Errorf("failed to analyze assessment: %w", err)
			s.logger.Warn("analysis failed, back to assessment", zap.String("session", s.id), zap.Error(err))
			return s.lastErr
		}

		s.result = result
		s.state = StateResults
		s.logger.Info("assessment complete", zap.String("session", s.id), zap.String("profile_type", result.PersonalityProfile.Type))
		return nil
	}
}

func (s *Session) persist(ctx context.Context, result *models.AnalysisResult, profile models.UserProfile) error {
	resultJSON, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to encode results: %w", err)
	}
	profileJSON, err := json.Marshal(profile)
	if err != nil {
		return fmt.Errorf("failed to encode profile: %w", err)
	}

	if err := s.store.Set(ctx, repositories.KeyAssessmentResults, string(resultJSON)); err != nil {
		return err
	}
	return s.store.Set(ctx, repositories.KeyUserProfile, string(profileJSON))
}

// LoadResults reads the last stored assessment back from the local store.
func LoadResults(ctx context.Context, store repositories.LocalStore) (*models.AnalysisResult, *models.UserProfile, error) {
	raw, ok, err := store.Get(ctx, repositories.KeyAssessmentResults)
	if err != nil {
		return nil, nil, err
	}
	if !ok {
		return nil, nil, ErrNoResults
	}

	var result models.AnalysisResult
	if err := json.Unmarshal([]byte(raw), &result); err != nil {
		return nil, nil, fmt.Errorf("failed to decode stored results: %w", err)
	}

	var profile models.UserProfile
	raw, ok, err = store.Get(ctx, repositories.KeyUserProfile)
	if err != nil {
		return nil, nil, err
	}
	if ok {
		if err := json.Unmarshal([]byte(raw), &profile); err != nil {
			return nil, nil, fmt.Errorf("failed to decode stored profile: %w", err)
		}
	}

	return &result, &profile, nil
}
