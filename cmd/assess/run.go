package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"alfredoptarigan/ai-mentorship/internal/client"
	"alfredoptarigan/ai-mentorship/internal/models"
	"alfredoptarigan/ai-mentorship/internal/services"
	"alfredoptarigan/ai-mentorship/internal/session"
)

const (
	PromptPrevious   = "← Previous"
	PromptWrite      = "✍️  Write answer"
	PromptStartOver  = "Start over"
	PromptQuit       = "Quit"
	PromptRetry      = "Try again"
	PromptSpecify    = "Please specify your answer"
	PromptTextAnswer = "Your answer"
)

var flagLocal bool

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Take the assessment interactively",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runAssessment(cmd.Context())
	},
}

func init() {
	runCmd.Flags().BoolVar(&flagLocal, "local", false, "call Gemini directly instead of the assessment API")
}

func runAssessment(ctx context.Context) error {
	e, err := setup(ctx)
	if err != nil {
		return err
	}
	defer e.Close()

	ident, err := identityFor(e.cfg)
	if err != nil {
		return err
	}

	api, err := backend(ctx, e)
	if err != nil {
		return err
	}

	s := session.New(api, e.store, ident, e.log)
	e.log.Debug("session created", zap.String("session", s.ID()))

	if err := drive(ctx, s); err != nil {
		if errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, promptui.ErrEOF) {
			return nil
		}
		return err
	}

	fmt.Println()
	fmt.Println(renderMarkdown(services.FormatMarkdown(s.Result())))
	fmt.Println("💾 Results saved. Run `assess report` to export them.")
	return nil
}

// backend is the remote API client, or with --local an in-process service.
func backend(ctx context.Context, e *env) (session.API, error) {
	if !flagLocal {
		return client.New(e.cfg.Client.APIURL, e.cfg.Client.Timeout, e.cfg.Client.IDToken, e.log), nil
	}

	generator, err := services.NewGeminiService(ctx, e.cfg.Gemini.APIKey, e.cfg.Gemini.Model, e.cfg.Gemini.Temperature, e.log)
	if err != nil {
		return nil, err
	}
	return services.NewAssessmentService(generator, nil, e.log, services.AssessmentOptions{
		Timeout:                  e.cfg.Gemini.Timeout,
		FallbackOnGeneratorError: e.cfg.Assessment.FallbackOnGeneratorError,
	}), nil
}

func drive(ctx context.Context, s *session.Session) error {
	for {
		if err := s.Err(); err != nil {
			fmt.Printf("⚠️  Something went wrong: %v\n", err)
			_, choice, err := (&promptui.Select{Label: "What now?", Items: []string{PromptStartOver, PromptQuit}}).Run()
			if err != nil {
				return err
			}
			if choice == PromptQuit {
				return s.Err()
			}
			s.Reset()
			continue
		}

		var err error
		switch s.State() {
		case session.StateProfiling:
			err = askProfile(ctx, s)
		case session.StateAssessment:
			err = askQuestion(ctx, s)
		case session.StateResults:
			return nil
		default:
			return fmt.Errorf("unexpected session state %q", s.State())
		}

		if err == nil {
			continue
		}
		if errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, promptui.ErrEOF) {
			return err
		}
		if isUserError(err) {
			fmt.Printf("❗ %v\n", err)
		}
	}
}

func isUserError(err error) bool {
	return errors.Is(err, session.ErrEmptyAnswer) ||
		errors.Is(err, session.ErrUnknownOption) ||
		errors.Is(err, session.ErrNotReady) ||
		errors.Is(err, session.ErrInvalidState)
}

func askProfile(ctx context.Context, s *session.Session) error {
	pq, ok := s.CurrentProfileQuestion()
	if !ok {
		return nil
	}

	_, choice, err := (&promptui.Select{Label: pq.Question, Items: pq.Options, Size: len(pq.Options)}).Run()
	if err != nil {
		return err
	}

	var other string
	if session.IsOtherOption(choice) {
		if other, err = askText(PromptSpecify, ""); err != nil {
			return err
		}
	}

	return s.AnswerProfile(ctx, choice, other)
}

func askQuestion(ctx context.Context, s *session.Session) error {
	if err := s.LastError(); err != nil {
		fmt.Printf("⚠️  %v\n", err)
		_, choice, err := (&promptui.Select{Label: "The analysis failed", Items: []string{PromptRetry, PromptStartOver, PromptQuit}}).Run()
		if err != nil {
			return err
		}
		switch choice {
		case PromptRetry:
			return s.Finish(ctx)
		case PromptStartOver:
			s.Reset()
			return nil
		default:
			return promptui.ErrInterrupt
		}
	}

	q, ok := s.CurrentQuestion()
	if !ok {
		return nil
	}

	fmt.Printf("\n%s · %s\n", s.ProgressLabel(), s.StatusLabel())

	draft := s.Draft()
	var items []string
	if q.IsMultipleChoice() {
		items = append(items, q.Options...)
	} else {
		items = append(items, PromptWrite)
	}
	if s.CurrentIndex() > 0 {
		items = append(items, PromptPrevious)
	}
	answered := draft != session.Draft{}
	if answered || len(s.Responses()) >= models.MaxResponses {
		items = append(items, s.ActionLabel())
	}

	label := q.Question
	if answered {
		label = fmt.Sprintf("%s (answered: %s)", q.Question, draftSummary(draft))
	}

	_, choice, err := (&promptui.Select{Label: label, Items: items, Size: len(items)}).Run()
	if err != nil {
		return err
	}

	switch {
	case choice == PromptPrevious:
		return s.Previous()
	case choice == s.ActionLabel() && !containsItem(q.Options, choice):
		return s.Next(ctx)
	case choice == PromptWrite:
		hint := q.Placeholder
		text, err := askText(withHint(PromptTextAnswer, hint), draft.Text)
		if err != nil {
			return err
		}
		return s.SubmitText(ctx, text)
	}

	if err := s.SelectChoice(ctx, choice); err != nil {
		return err
	}
	if !s.PendingOther() {
		return nil
	}

	text, err := askText(PromptSpecify, draft.OtherText)
	if err != nil {
		return err
	}
	return s.SubmitOther(ctx, text)
}

func askText(label, initial string) (string, error) {
	p := promptui.Prompt{
		Label:     label,
		Default:   initial,
		AllowEdit: true,
		Validate: func(input string) error {
			if strings.TrimSpace(input) == "" {
				return session.ErrEmptyAnswer
			}
			return nil
		},
	}
	return p.Run()
}

func withHint(label, hint string) string {
	if hint == "" {
		return label
	}
	return fmt.Sprintf("%s (%s)", label, hint)
}

func draftSummary(d session.Draft) string {
	switch {
	case d.OtherText != "":
		return "Other: " + d.OtherText
	case d.Choice != "":
		return d.Choice
	default:
		return d.Text
	}
}

func containsItem(items []string, item string) bool {
	for _, i := range items {
		if i == item {
			return true
		}
	}
	return false
}
