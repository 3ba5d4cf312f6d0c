package models

import "testing"

func TestSetPasswordHashes(t *testing.T) {
	u := User{}
	if err := u.SetPassword("correct horse battery"); err != nil {
		t.Fatalf("SetPassword: %v", err)
	}
	if u.Password == "correct horse battery" {
		t.Fatal("password stored in plain text")
	}
	if !u.CheckPassword("correct horse battery") {
		t.Error("CheckPassword rejected the right password")
	}
	if u.CheckPassword("wrong password") {
		t.Error("CheckPassword accepted a wrong password")
	}
}

func TestSanitizeOmitsPassword(t *testing.T) {
	u := User{
		Email:     "jane@example.com",
		FirstName: "Jane",
		LastName:  "Doe",
	}
	if err := u.SetPassword("secret-enough"); err != nil {
		t.Fatalf("SetPassword: %v", err)
	}
	s := u.Sanitize()
	if s.Email != u.Email || s.FirstName != "Jane" || s.LastName != "Doe" {
		t.Errorf("Sanitize dropped identity fields: %+v", s)
	}
}
