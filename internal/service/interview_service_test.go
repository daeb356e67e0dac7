package service

import (
	"context"
	"errors"
	"testing"

	"github.com/lshigami/interview-coach/internal/apperror"
	"github.com/lshigami/interview-coach/internal/dto"
	"github.com/lshigami/interview-coach/internal/model"
	"github.com/lshigami/interview-coach/internal/repository"
	"github.com/lshigami/interview-coach/internal/testutil"
	"gorm.io/gorm"
)

type interviewFixture struct {
	db  *gorm.DB
	llm *testutil.FakeLLM
	svc InterviewService
}

func newInterviewFixture(t *testing.T) interviewFixture {
	t.Helper()
	db := testutil.NewDB(t)
	llm := &testutil.FakeLLM{Question: "What is a goroutine?", Feedback: "Solid answer. Score: 8/10"}
	svc := NewInterviewService(
		repository.NewSessionRepository(db),
		repository.NewQuestionRepository(db),
		repository.NewAnswerRepository(db),
		llm,
		db,
	)
	return interviewFixture{db: db, llm: llm, svc: svc}
}

func createUser(t *testing.T, db *gorm.DB, username string) *model.User {
	t.Helper()
	user := &model.User{Username: username, Email: username + "@example.com", Password: "x"}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}
	return user
}

func countRows(t *testing.T, db *gorm.DB, value interface{}) int64 {
	t.Helper()
	var n int64
	if err := db.Model(value).Count(&n).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	return n
}

func TestGenerateQuestionReusesSessionPerRole(t *testing.T) {
	f := newInterviewFixture(t)
	ctx := context.Background()
	user := createUser(t, f.db, "alice")

	first, err := f.svc.GenerateQuestion(ctx, user.ID, "Backend Engineer")
	if err != nil {
		t.Fatalf("GenerateQuestion: %v", err)
	}
	if first.Question != "What is a goroutine?" || first.SessionID == 0 {
		t.Fatalf("unexpected response: %+v", first)
	}

	f.llm.Question = "Explain channels."
	second, err := f.svc.GenerateQuestion(ctx, user.ID, "Backend Engineer")
	if err != nil {
		t.Fatalf("GenerateQuestion: %v", err)
	}
	if second.SessionID != first.SessionID {
		t.Fatalf("session not reused: %d != %d", second.SessionID, first.SessionID)
	}

	other, err := f.svc.GenerateQuestion(ctx, user.ID, "Data Scientist")
	if err != nil {
		t.Fatalf("GenerateQuestion: %v", err)
	}
	if other.SessionID == first.SessionID {
		t.Fatal("a different role must get its own session")
	}

	if n := countRows(t, f.db, &model.Question{}); n != 3 {
		t.Fatalf("questions = %d, want 3", n)
	}
	var session model.Session
	if err := f.db.First(&session, first.SessionID).Error; err != nil {
		t.Fatalf("load session: %v", err)
	}
	if session.Score == nil || *session.Score != 0 {
		t.Fatalf("new session score = %v, want 0", session.Score)
	}
}

func TestGenerateQuestionDefaultsRole(t *testing.T) {
	f := newInterviewFixture(t)
	user := createUser(t, f.db, "alice")

	if _, err := f.svc.GenerateQuestion(context.Background(), user.ID, "   "); err != nil {
		t.Fatalf("GenerateQuestion: %v", err)
	}
	if len(f.llm.Roles) != 1 || f.llm.Roles[0] != DefaultRole {
		t.Fatalf("roles = %v", f.llm.Roles)
	}
}

func TestGenerateQuestionLLMFailurePersistsNothing(t *testing.T) {
	f := newInterviewFixture(t)
	user := createUser(t, f.db, "alice")
	f.llm.Err = errors.New("boom")

	_, err := f.svc.GenerateQuestion(context.Background(), user.ID, "Backend Engineer")
	assertAppError(t, err, apperror.KindUpstream, "failed to generate question")

	if n := countRows(t, f.db, &model.Session{}); n != 0 {
		t.Fatalf("sessions = %d, want 0", n)
	}
	if n := countRows(t, f.db, &model.Question{}); n != 0 {
		t.Fatalf("questions = %d, want 0", n)
	}
}

func TestEvaluateAnswerLinksQuestionAndScores(t *testing.T) {
	f := newInterviewFixture(t)
	ctx := context.Background()
	user := createUser(t, f.db, "alice")

	gen, err := f.svc.GenerateQuestion(ctx, user.ID, "Backend Engineer")
	if err != nil {
		t.Fatalf("GenerateQuestion: %v", err)
	}

	res, err := f.svc.EvaluateAnswer(ctx, user.ID, dto.EvaluateAnswerRequest{
		Question:  gen.Question,
		Answer:    "A lightweight thread managed by the runtime.",
		SessionID: &gen.SessionID,
	})
	if err != nil {
		t.Fatalf("EvaluateAnswer: %v", err)
	}
	if res.Score == nil || *res.Score != 8 || res.SessionID != gen.SessionID {
		t.Fatalf("unexpected response: %+v", res)
	}

	var answer model.Answer
	if err := f.db.First(&answer, res.AnswerID).Error; err != nil {
		t.Fatalf("load answer: %v", err)
	}
	if answer.QuestionID == nil || answer.Score == nil || *answer.Score != 8 {
		t.Fatalf("answer not linked or scored: %+v", answer)
	}
	var question model.Question
	if err := f.db.First(&question, *answer.QuestionID).Error; err != nil {
		t.Fatalf("load question: %v", err)
	}
	if question.Text != gen.Question {
		t.Fatalf("linked question = %q", question.Text)
	}

	var session model.Session
	if err := f.db.First(&session, gen.SessionID).Error; err != nil {
		t.Fatalf("load session: %v", err)
	}
	if session.Score == nil || *session.Score != 8 {
		t.Fatalf("session score = %v, want 8", session.Score)
	}
}

func TestEvaluateAnswerWithoutScoreClearsSessionScore(t *testing.T) {
	f := newInterviewFixture(t)
	ctx := context.Background()
	user := createUser(t, f.db, "alice")
	f.llm.Feedback = "Good effort, keep practicing."

	res, err := f.svc.EvaluateAnswer(ctx, user.ID, dto.EvaluateAnswerRequest{Question: "Q", Answer: "A"})
	if err != nil {
		t.Fatalf("EvaluateAnswer: %v", err)
	}
	if res.Score != nil {
		t.Fatalf("score = %v, want nil", *res.Score)
	}
	var session model.Session
	if err := f.db.First(&session, res.SessionID).Error; err != nil {
		t.Fatalf("load session: %v", err)
	}
	if session.Score != nil {
		t.Fatalf("session score = %v, want nil", *session.Score)
	}
	if session.Role != "" {
		t.Fatalf("fallback session role = %q, want empty", session.Role)
	}
}

func TestEvaluateAnswerIgnoresForeignSession(t *testing.T) {
	f := newInterviewFixture(t)
	ctx := context.Background()
	alice := createUser(t, f.db, "alice")
	bob := createUser(t, f.db, "bob")

	gen, err := f.svc.GenerateQuestion(ctx, alice.ID, "Backend Engineer")
	if err != nil {
		t.Fatalf("GenerateQuestion: %v", err)
	}
	res, err := f.svc.EvaluateAnswer(ctx, bob.ID, dto.EvaluateAnswerRequest{
		Question:  gen.Question,
		Answer:    "A",
		SessionID: &gen.SessionID,
	})
	if err != nil {
		t.Fatalf("EvaluateAnswer: %v", err)
	}
	if res.SessionID == gen.SessionID {
		t.Fatal("answer attached to another user's session")
	}
	var session model.Session
	if err := f.db.First(&session, res.SessionID).Error; err != nil {
		t.Fatalf("load session: %v", err)
	}
	if session.UserID != bob.ID {
		t.Fatalf("session owner = %d, want %d", session.UserID, bob.ID)
	}
}

func TestEvaluateAnswerRequiresBothFields(t *testing.T) {
	f := newInterviewFixture(t)
	user := createUser(t, f.db, "alice")

	_, err := f.svc.EvaluateAnswer(context.Background(), user.ID, dto.EvaluateAnswerRequest{Question: "Q"})
	assertAppError(t, err, apperror.KindValidation, "Both 'question' and 'answer' are required.")
	if f.llm.Calls != 0 {
		t.Fatalf("llm called %d times", f.llm.Calls)
	}
	if n := countRows(t, f.db, &model.Answer{}); n != 0 {
		t.Fatalf("answers = %d, want 0", n)
	}
}

func TestEvaluateAnswerLLMFailurePersistsNothing(t *testing.T) {
	f := newInterviewFixture(t)
	user := createUser(t, f.db, "alice")
	f.llm.Err = errors.New("upstream down")

	_, err := f.svc.EvaluateAnswer(context.Background(), user.ID, dto.EvaluateAnswerRequest{Question: "Q", Answer: "A"})
	assertAppError(t, err, apperror.KindUpstream, "failed to evaluate answer")
	if n := countRows(t, f.db, &model.Session{}); n != 0 {
		t.Fatalf("sessions = %d, want 0", n)
	}
	if n := countRows(t, f.db, &model.Answer{}); n != 0 {
		t.Fatalf("answers = %d, want 0", n)
	}
}

func TestSaveSessionKeepsScoreAsGiven(t *testing.T) {
	f := newInterviewFixture(t)
	ctx := context.Background()
	user := createUser(t, f.db, "alice")

	res, err := f.svc.SaveSession(ctx, user.ID, dto.SaveSessionRequest{Role: "QA"})
	if err != nil {
		t.Fatalf("SaveSession: %v", err)
	}
	if res.Message != "Session saved successfully!" || res.SessionID == 0 {
		t.Fatalf("unexpected response: %+v", res)
	}
	var session model.Session
	if err := f.db.First(&session, res.SessionID).Error; err != nil {
		t.Fatalf("load session: %v", err)
	}
	if session.Score != nil || session.Role != "QA" {
		t.Fatalf("session without score: %+v, want nil score", session)
	}

	seven := 7
	res, err = f.svc.SaveSession(ctx, user.ID, dto.SaveSessionRequest{Role: "QA", Score: &seven})
	if err != nil {
		t.Fatalf("SaveSession: %v", err)
	}
	var scored model.Session
	if err := f.db.First(&scored, res.SessionID).Error; err != nil {
		t.Fatalf("load session: %v", err)
	}
	if scored.Score == nil || *scored.Score != 7 {
		t.Fatalf("score = %v, want 7", scored.Score)
	}
}

func TestSessionHistory(t *testing.T) {
	f := newInterviewFixture(t)
	ctx := context.Background()
	alice := createUser(t, f.db, "alice")
	bob := createUser(t, f.db, "bob")

	empty, err := f.svc.SessionHistory(ctx, alice.ID)
	if err != nil {
		t.Fatalf("SessionHistory: %v", err)
	}
	if empty == nil || len(empty) != 0 {
		t.Fatalf("history = %#v, want empty slice", empty)
	}

	f.llm.Question = "Q1"
	gen, err := f.svc.GenerateQuestion(ctx, alice.ID, "Backend Engineer")
	if err != nil {
		t.Fatalf("GenerateQuestion: %v", err)
	}
	if _, err := f.svc.EvaluateAnswer(ctx, alice.ID, dto.EvaluateAnswerRequest{
		Question: "Q1", Answer: "A1", SessionID: &gen.SessionID,
	}); err != nil {
		t.Fatalf("EvaluateAnswer: %v", err)
	}
	f.llm.Question = "Q2"
	if _, err := f.svc.GenerateQuestion(ctx, alice.ID, "Backend Engineer"); err != nil {
		t.Fatalf("GenerateQuestion: %v", err)
	}
	if _, err := f.svc.SaveSession(ctx, alice.ID, dto.SaveSessionRequest{}); err != nil {
		t.Fatalf("SaveSession: %v", err)
	}
	if _, err := f.svc.SaveSession(ctx, bob.ID, dto.SaveSessionRequest{Role: "Bob's role"}); err != nil {
		t.Fatalf("SaveSession: %v", err)
	}

	items, err := f.svc.SessionHistory(ctx, alice.ID)
	if err != nil {
		t.Fatalf("SessionHistory: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("items = %d, want 2", len(items))
	}

	saved := items[0]
	if saved.Role != "N/A" || saved.Question != "No question" || saved.Answer != "No answer" || saved.Feedback != "No feedback" || saved.Score != 0 {
		t.Fatalf("placeholders not applied: %+v", saved)
	}

	interview := items[1]
	if interview.ID != gen.SessionID || interview.Role != "Backend Engineer" {
		t.Fatalf("unexpected session item: %+v", interview)
	}
	if interview.Question != "Q2" {
		t.Fatalf("question = %q, want latest question Q2", interview.Question)
	}
	// Q2 is unanswered, so the session's latest answer is shown.
	if interview.Answer != "A1" || interview.Feedback != "Solid answer. Score: 8/10" || interview.Score != 8 {
		t.Fatalf("unexpected answer fields: %+v", interview)
	}
}
