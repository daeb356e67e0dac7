package service

import (
	"context"
	"testing"

	"github.com/lshigami/interview-coach/internal/apperror"
	"github.com/lshigami/interview-coach/internal/dto"
	"github.com/lshigami/interview-coach/internal/model"
	"github.com/lshigami/interview-coach/internal/repository"
	"github.com/lshigami/interview-coach/internal/testutil"
	"gorm.io/gorm"
)

type resourceFixture struct {
	db        *gorm.DB
	sessions  SessionService
	questions QuestionService
	answers   AnswerService
}

func newResourceFixture(t *testing.T) resourceFixture {
	t.Helper()
	db := testutil.NewDB(t)
	sessionRepo := repository.NewSessionRepository(db)
	questionRepo := repository.NewQuestionRepository(db)
	answerRepo := repository.NewAnswerRepository(db)
	return resourceFixture{
		db:        db,
		sessions:  NewSessionService(sessionRepo),
		questions: NewQuestionService(questionRepo, sessionRepo),
		answers:   NewAnswerService(answerRepo, sessionRepo, questionRepo),
	}
}

func uintPtr(v uint) *uint { return &v }
func strPtr(v string) *string { return &v }
func floatPtr(v float64) *float64 { return &v }

func TestSessionCRUDIsScopedToOwner(t *testing.T) {
	f := newResourceFixture(t)
	ctx := context.Background()
	alice := createUser(t, f.db, "alice")
	bob := createUser(t, f.db, "bob")

	created, err := f.sessions.CreateSession(ctx, alice.ID, dto.SessionRequest{Role: "SRE"})
	if err != nil {
		t.Fatalf("CreateSession: %v", err)
	}
	if created.UserID != alice.ID || created.Score == nil || *created.Score != 0 {
		t.Fatalf("unexpected session: %+v", created)
	}

	_, err = f.sessions.GetSession(ctx, bob.ID, created.ID)
	assertAppError(t, err, apperror.KindNotFound, "")
	assertAppError(t, f.sessions.DeleteSession(ctx, bob.ID, created.ID), apperror.KindNotFound, "")

	list, err := f.sessions.ListSessions(ctx, bob.ID)
	if err != nil {
		t.Fatalf("ListSessions: %v", err)
	}
	if len(list) != 0 {
		t.Fatalf("bob sees %d sessions", len(list))
	}

	patched, err := f.sessions.PatchSession(ctx, alice.ID, created.ID, dto.SessionPatchRequest{Score: intPtr(7)})
	if err != nil {
		t.Fatalf("PatchSession: %v", err)
	}
	if patched.Role != "SRE" || patched.Score == nil || *patched.Score != 7 {
		t.Fatalf("unexpected patched session: %+v", patched)
	}

	updated, err := f.sessions.UpdateSession(ctx, alice.ID, created.ID, dto.SessionRequest{Role: "Platform"})
	if err != nil {
		t.Fatalf("UpdateSession: %v", err)
	}
	if updated.Role != "Platform" || *updated.Score != 7 {
		t.Fatalf("unexpected updated session: %+v", updated)
	}

	_, err = f.sessions.PatchSession(ctx, alice.ID, created.ID, dto.SessionPatchRequest{Role: strPtr(" ")})
	appErr := assertAppError(t, err, apperror.KindValidation, "")
	if appErr.Fields["role"][0] != "This field may not be blank." {
		t.Fatalf("fields = %v", appErr.Fields)
	}
}

func TestDeleteSessionCascades(t *testing.T) {
	f := newResourceFixture(t)
	ctx := context.Background()
	alice := createUser(t, f.db, "alice")

	session, err := f.sessions.CreateSession(ctx, alice.ID, dto.SessionRequest{Role: "SRE"})
	if err != nil {
		t.Fatalf("CreateSession: %v", err)
	}
	question, err := f.questions.CreateQuestion(ctx, alice.ID, dto.QuestionRequest{Text: "Q", SessionID: &session.ID})
	if err != nil {
		t.Fatalf("CreateQuestion: %v", err)
	}
	if _, err := f.answers.CreateAnswer(ctx, alice.ID, dto.AnswerRequest{
		Text: "A", SessionID: &session.ID, QuestionID: &question.ID,
	}); err != nil {
		t.Fatalf("CreateAnswer: %v", err)
	}

	if err := f.sessions.DeleteSession(ctx, alice.ID, session.ID); err != nil {
		t.Fatalf("DeleteSession: %v", err)
	}
	for _, table := range []interface{}{&model.Session{}, &model.Question{}, &model.Answer{}} {
		if n := countRows(t, f.db, table); n != 0 {
			t.Fatalf("%T rows = %d after cascade", table, n)
		}
	}
}

func TestQuestionCRUD(t *testing.T) {
	f := newResourceFixture(t)
	ctx := context.Background()
	alice := createUser(t, f.db, "alice")
	bob := createUser(t, f.db, "bob")

	aliceSession, err := f.sessions.CreateSession(ctx, alice.ID, dto.SessionRequest{Role: "SRE"})
	if err != nil {
		t.Fatalf("CreateSession: %v", err)
	}
	bobSession, err := f.sessions.CreateSession(ctx, bob.ID, dto.SessionRequest{Role: "QA"})
	if err != nil {
		t.Fatalf("CreateSession: %v", err)
	}

	_, err = f.questions.CreateQuestion(ctx, alice.ID, dto.QuestionRequest{Text: "Q"})
	appErr := assertAppError(t, err, apperror.KindValidation, "")
	if appErr.Fields["session_id"][0] != "This field is required." {
		t.Fatalf("fields = %v", appErr.Fields)
	}

	_, err = f.questions.CreateQuestion(ctx, alice.ID, dto.QuestionRequest{Text: "Q", SessionID: &bobSession.ID})
	appErr = assertAppError(t, err, apperror.KindValidation, "")
	if len(appErr.Fields["session_id"]) != 1 {
		t.Fatalf("fields = %v", appErr.Fields)
	}

	q, err := f.questions.CreateQuestion(ctx, alice.ID, dto.QuestionRequest{Text: "Q", SessionID: &aliceSession.ID, Score: intPtr(3)})
	if err != nil {
		t.Fatalf("CreateQuestion: %v", err)
	}
	if q.Score != 3 || q.SessionID == nil || *q.SessionID != aliceSession.ID {
		t.Fatalf("unexpected question: %+v", q)
	}

	_, err = f.questions.GetQuestion(ctx, bob.ID, q.ID)
	assertAppError(t, err, apperror.KindNotFound, "")

	patched, err := f.questions.PatchQuestion(ctx, alice.ID, q.ID, dto.QuestionPatchRequest{Text: strPtr("Q edited")})
	if err != nil {
		t.Fatalf("PatchQuestion: %v", err)
	}
	if patched.Text != "Q edited" || patched.Score != 3 {
		t.Fatalf("unexpected patched question: %+v", patched)
	}

	list, err := f.questions.ListQuestions(ctx, alice.ID)
	if err != nil {
		t.Fatalf("ListQuestions: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("questions = %d, want 1", len(list))
	}

	if err := f.questions.DeleteQuestion(ctx, alice.ID, q.ID); err != nil {
		t.Fatalf("DeleteQuestion: %v", err)
	}
	_, err = f.questions.GetQuestion(ctx, alice.ID, q.ID)
	assertAppError(t, err, apperror.KindNotFound, "")
}

func TestAnswerCRUD(t *testing.T) {
	f := newResourceFixture(t)
	ctx := context.Background()
	alice := createUser(t, f.db, "alice")
	bob := createUser(t, f.db, "bob")

	session, err := f.sessions.CreateSession(ctx, alice.ID, dto.SessionRequest{Role: "SRE"})
	if err != nil {
		t.Fatalf("CreateSession: %v", err)
	}
	bobSession, err := f.sessions.CreateSession(ctx, bob.ID, dto.SessionRequest{Role: "QA"})
	if err != nil {
		t.Fatalf("CreateSession: %v", err)
	}
	bobQuestion, err := f.questions.CreateQuestion(ctx, bob.ID, dto.QuestionRequest{Text: "BQ", SessionID: &bobSession.ID})
	if err != nil {
		t.Fatalf("CreateQuestion: %v", err)
	}

	created, err := f.answers.CreateAnswer(ctx, alice.ID, dto.AnswerRequest{Text: "A", SessionID: &session.ID})
	if err != nil {
		t.Fatalf("CreateAnswer: %v", err)
	}
	if created.Score == nil || *created.Score != 0 {
		t.Fatalf("default score = %v, want 0", created.Score)
	}

	_, err = f.answers.CreateAnswer(ctx, alice.ID, dto.AnswerRequest{
		Text: "A", SessionID: &session.ID, QuestionID: &bobQuestion.ID,
	})
	appErr := assertAppError(t, err, apperror.KindValidation, "")
	if len(appErr.Fields["question_id"]) != 1 {
		t.Fatalf("fields = %v", appErr.Fields)
	}

	_, err = f.answers.PatchAnswer(ctx, alice.ID, created.ID, dto.AnswerPatchRequest{SessionID: uintPtr(bobSession.ID)})
	assertAppError(t, err, apperror.KindValidation, "")

	patched, err := f.answers.PatchAnswer(ctx, alice.ID, created.ID, dto.AnswerPatchRequest{
		Feedback: strPtr("better"), Score: floatPtr(6.5),
	})
	if err != nil {
		t.Fatalf("PatchAnswer: %v", err)
	}
	if patched.Text != "A" || *patched.Feedback != "better" || *patched.Score != 6.5 {
		t.Fatalf("unexpected patched answer: %+v", patched)
	}

	_, err = f.answers.GetAnswer(ctx, bob.ID, created.ID)
	assertAppError(t, err, apperror.KindNotFound, "")

	list, err := f.answers.ListAnswers(ctx, bob.ID)
	if err != nil {
		t.Fatalf("ListAnswers: %v", err)
	}
	if len(list) != 0 {
		t.Fatalf("bob sees %d answers", len(list))
	}

	if err := f.answers.DeleteAnswer(ctx, alice.ID, created.ID); err != nil {
		t.Fatalf("DeleteAnswer: %v", err)
	}
	if n := countRows(t, f.db, &model.Answer{}); n != 0 {
		t.Fatalf("answers = %d, want 0", n)
	}
}
