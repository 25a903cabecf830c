package user

import (
	"context"
	"errors"
	"testing"

	"github.com/aalshehri/wms-backend/internal/modules/policy"
	"golang.org/x/crypto/bcrypt"
)

type mockRepo struct {
	users map[string]*User
}

func newMockRepo() *mockRepo { return &mockRepo{users: make(map[string]*User)} }

func (m *mockRepo) CreateUser(ctx context.Context, u *User) error {
	if _, ok := m.users[u.Username]; ok {
		return errors.New("duplicate key value violates unique constraint (23505)")
	}
	cp := *u
	m.users[u.Username] = &cp
	return nil
}

func (m *mockRepo) GetUserByUsername(ctx context.Context, username string) (*User, error) {
	u, ok := m.users[username]
	if !ok {
		return nil, errors.New("no rows")
	}
	cp := *u
	return &cp, nil
}

func (m *mockRepo) GetUserByID(ctx context.Context, id string) (*User, error) {
	for _, u := range m.users {
		if u.ID.String() == id {
			cp := *u
			return &cp, nil
		}
	}
	return nil, errors.New("no rows")
}

func (m *mockRepo) UpdateProfile(ctx context.Context, username, fullName, passwordHash string) error {
	u, ok := m.users[username]
	if !ok {
		return errors.New("no rows")
	}
	u.FullName = fullName
	u.PasswordHash = passwordHash
	return nil
}

func TestRegisterUser_DefaultsToSupervisor(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo)

	u, err := svc.RegisterUser(context.Background(), "sara", "s3cret", "Sara Al-Qahtani", "ICU 28")
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if u.Role != policy.RoleSupervisor {
		t.Errorf("expected supervisor role, got %s", u.Role)
	}
	if u.PasswordHash == "s3cret" {
		t.Error("password must not be stored in clear text")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("s3cret")); err != nil {
		t.Error("stored hash must verify against the password")
	}
}

func TestRegisterUser_RejectsEmptyFields(t *testing.T) {
	svc := NewService(newMockRepo())

	cases := [][4]string{
		{"", "pw", "Name", "O.R"},
		{"u", "", "Name", "O.R"},
		{"u", "pw", "  ", "O.R"},
	}
	for i, c := range cases {
		if _, err := svc.RegisterUser(context.Background(), c[0], c[1], c[2], c[3]); !errors.Is(err, ErrValidation) {
			t.Errorf("case %d: expected ErrValidation, got %v", i, err)
		}
	}
}

func TestUpdateProfile_NameAndPasswordOnly(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo)
	ctx := context.Background()

	orig, err := svc.RegisterUser(ctx, "sara", "s3cret", "Sara Al-Qahtani", "ICU 28")
	if err != nil {
		t.Fatal(err)
	}

	updated, err := svc.UpdateProfile(ctx, "sara", "Sara A. Al-Qahtani", "n3w-pass")
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.FullName != "Sara A. Al-Qahtani" {
		t.Errorf("expected new name, got %q", updated.FullName)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(updated.PasswordHash), []byte("n3w-pass")); err != nil {
		t.Error("new password must verify")
	}
	if updated.Role != orig.Role || updated.Region != orig.Region {
		t.Error("role and region must be immutable through profile edit")
	}
}

func TestUpdateProfile_EmptyFieldsUnchanged(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo)
	ctx := context.Background()

	if _, err := svc.RegisterUser(ctx, "sara", "s3cret", "Sara Al-Qahtani", "ICU 28"); err != nil {
		t.Fatal(err)
	}

	updated, err := svc.UpdateProfile(ctx, "sara", "", "")
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.FullName != "Sara Al-Qahtani" {
		t.Errorf("name must be unchanged, got %q", updated.FullName)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(updated.PasswordHash), []byte("s3cret")); err != nil {
		t.Error("old password must still verify")
	}
}
