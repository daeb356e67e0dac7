package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/lshigami/interview-coach/internal/model"
	"github.com/lshigami/interview-coach/internal/testutil"
	"gorm.io/gorm"
)

func seedUser(t *testing.T, repo UserRepository, name string) *model.User {
	t.Helper()
	u := &model.User{Username: name, Email: name + "@example.com", Password: "hash"}
	if err := repo.Create(context.Background(), u); err != nil {
		t.Fatalf("create user %s: %v", name, err)
	}
	return u
}

func TestUserRepository(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()
	alice := seedUser(t, repo, "alice")

	found, err := repo.FindByUsername(ctx, "alice")
	if err != nil || found.ID != alice.ID {
		t.Fatalf("FindByUsername = %+v, %v", found, err)
	}
	if _, err := repo.FindByID(ctx, alice.ID+100); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("FindByID missing: err = %v", err)
	}

	exists, err := repo.ExistsByEmail(ctx, "alice@example.com")
	if err != nil || !exists {
		t.Fatalf("ExistsByEmail = %v, %v", exists, err)
	}
	exists, err = repo.ExistsByUsername(ctx, "bob")
	if err != nil || exists {
		t.Fatalf("ExistsByUsername(bob) = %v, %v", exists, err)
	}

	dup := &model.User{Username: "alice", Email: "other@example.com", Password: "hash"}
	if err := repo.Create(ctx, dup); !errors.Is(err, gorm.ErrDuplicatedKey) {
		t.Fatalf("duplicate username: err = %v", err)
	}
}

func TestSessionRepositoryOwnershipAndOrdering(t *testing.T) {
	db := testutil.NewDB(t)
	users := NewUserRepository(db)
	sessions := NewSessionRepository(db)
	ctx := context.Background()
	alice := seedUser(t, users, "alice")
	bob := seedUser(t, users, "bob")

	base := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	older := &model.Session{UserID: alice.ID, Role: "SRE", StartedAt: base}
	newer := &model.Session{UserID: alice.ID, Role: "SRE", StartedAt: base.Add(time.Hour)}
	other := &model.Session{UserID: alice.ID, Role: "QA", StartedAt: base.Add(2 * time.Hour)}
	for _, s := range []*model.Session{older, newer, other} {
		if err := sessions.Create(ctx, s); err != nil {
			t.Fatalf("create session: %v", err)
		}
	}

	latest, err := sessions.FindLatestByUserAndRole(ctx, alice.ID, "SRE")
	if err != nil || latest.ID != newer.ID {
		t.Fatalf("FindLatestByUserAndRole = %+v, %v", latest, err)
	}
	if _, err := sessions.FindLatestByUserAndRole(ctx, bob.ID, "SRE"); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("bob has no SRE session: err = %v", err)
	}

	list, err := sessions.ListByUser(ctx, alice.ID)
	if err != nil {
		t.Fatalf("ListByUser: %v", err)
	}
	if len(list) != 3 || list[0].ID != other.ID || list[2].ID != older.ID {
		t.Fatalf("ListByUser order = %+v", list)
	}

	if _, err := sessions.FindByIDForUser(ctx, older.ID, bob.ID); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("foreign session visible: err = %v", err)
	}

	score := 6
	if err := sessions.UpdateScore(ctx, older.ID, &score); err != nil {
		t.Fatalf("UpdateScore: %v", err)
	}
	got, err := sessions.FindByIDForUser(ctx, older.ID, alice.ID)
	if err != nil || got.Score == nil || *got.Score != 6 {
		t.Fatalf("score after update = %+v, %v", got, err)
	}
	if err := sessions.UpdateScore(ctx, older.ID, nil); err != nil {
		t.Fatalf("UpdateScore(nil): %v", err)
	}
	got, err = sessions.FindByIDForUser(ctx, older.ID, alice.ID)
	if err != nil || got.Score != nil {
		t.Fatalf("score after clearing = %+v, %v", got, err)
	}
}

func TestQuestionAndAnswerLookups(t *testing.T) {
	db := testutil.NewDB(t)
	users := NewUserRepository(db)
	sessions := NewSessionRepository(db)
	questions := NewQuestionRepository(db)
	answers := NewAnswerRepository(db)
	ctx := context.Background()
	alice := seedUser(t, users, "alice")
	bob := seedUser(t, users, "bob")

	s1 := &model.Session{UserID: alice.ID, Role: "SRE"}
	s2 := &model.Session{UserID: alice.ID, Role: "QA"}
	for _, s := range []*model.Session{s1, s2} {
		if err := sessions.Create(ctx, s); err != nil {
			t.Fatalf("create session: %v", err)
		}
	}

	q1 := &model.Question{SessionID: &s1.ID, Text: "same"}
	q2 := &model.Question{SessionID: &s1.ID, Text: "same"}
	q3 := &model.Question{SessionID: &s2.ID, Text: "other"}
	for _, q := range []*model.Question{q1, q2, q3} {
		if err := questions.Create(ctx, q); err != nil {
			t.Fatalf("create question: %v", err)
		}
	}

	byText, err := questions.FindLatestInSessionByText(ctx, s1.ID, "same")
	if err != nil || byText.ID != q2.ID {
		t.Fatalf("FindLatestInSessionByText = %+v, %v", byText, err)
	}
	if _, err := questions.FindInSession(ctx, q3.ID, s1.ID); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("question from another session found: err = %v", err)
	}
	if _, err := questions.FindByIDForUser(ctx, q1.ID, bob.ID); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("foreign question visible: err = %v", err)
	}

	latestQ, err := questions.LatestBySessions(ctx, []uint{s1.ID, s2.ID})
	if err != nil {
		t.Fatalf("LatestBySessions: %v", err)
	}
	if latestQ[s1.ID].ID != q2.ID || latestQ[s2.ID].ID != q3.ID {
		t.Fatalf("latest questions = %+v", latestQ)
	}

	a1 := &model.Answer{SessionID: &s1.ID, QuestionID: &q1.ID, Text: "first"}
	a2 := &model.Answer{SessionID: &s1.ID, QuestionID: &q1.ID, Text: "second"}
	for _, a := range []*model.Answer{a1, a2} {
		if err := answers.Create(ctx, a); err != nil {
			t.Fatalf("create answer: %v", err)
		}
	}

	byQuestion, err := answers.LatestByQuestions(ctx, []uint{q1.ID, q2.ID})
	if err != nil {
		t.Fatalf("LatestByQuestions: %v", err)
	}
	if len(byQuestion) != 1 || byQuestion[q1.ID].ID != a2.ID {
		t.Fatalf("latest by question = %+v", byQuestion)
	}
	bySession, err := answers.LatestBySessions(ctx, []uint{s1.ID, s2.ID})
	if err != nil {
		t.Fatalf("LatestBySessions: %v", err)
	}
	if len(bySession) != 1 || bySession[s1.ID].ID != a2.ID {
		t.Fatalf("latest by session = %+v", bySession)
	}

	empty, err := answers.LatestBySessions(ctx, nil)
	if err != nil || len(empty) != 0 {
		t.Fatalf("LatestBySessions(nil) = %v, %v", empty, err)
	}

	if err := questions.Delete(ctx, q1.ID); err != nil {
		t.Fatalf("Delete question: %v", err)
	}
	list, err := answers.ListByUser(ctx, alice.ID)
	if err != nil {
		t.Fatalf("ListByUser: %v", err)
	}
	if len(list) != 0 {
		t.Fatalf("answers left after question delete: %+v", list)
	}
}

func TestWithTxRollsBack(t *testing.T) {
	db := testutil.NewDB(t)
	users := NewUserRepository(db)
	sessions := NewSessionRepository(db)
	ctx := context.Background()
	alice := seedUser(t, users, "alice")

	errBoom := errors.New("boom")
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := sessions.WithTx(tx).Create(ctx, &model.Session{UserID: alice.ID, Role: "SRE"}); err != nil {
			return err
		}
		return errBoom
	})
	if !errors.Is(err, errBoom) {
		t.Fatalf("transaction err = %v", err)
	}
	list, err := sessions.ListByUser(ctx, alice.ID)
	if err != nil {
		t.Fatalf("ListByUser: %v", err)
	}
	if len(list) != 0 {
		t.Fatalf("sessions = %d after rollback", len(list))
	}
}

func TestTokenBlacklistRepository(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewTokenBlacklistRepository(db)
	ctx := context.Background()

	entry := &model.TokenBlacklist{JTI: "jti-1", UserID: 1, ExpiresAt: time.Now().Add(time.Hour)}
	if err := repo.Add(ctx, entry); err != nil {
		t.Fatalf("Add: %v", err)
	}
	again := &model.TokenBlacklist{JTI: "jti-1", UserID: 1, ExpiresAt: time.Now().Add(time.Hour)}
	if err := repo.Add(ctx, again); !errors.Is(err, gorm.ErrDuplicatedKey) {
		t.Fatalf("duplicate jti: err = %v", err)
	}

	ok, err := repo.Exists(ctx, "jti-1")
	if err != nil || !ok {
		t.Fatalf("Exists(jti-1) = %v, %v", ok, err)
	}
	ok, err = repo.Exists(ctx, "jti-2")
	if err != nil || ok {
		t.Fatalf("Exists(jti-2) = %v, %v", ok, err)
	}
}
