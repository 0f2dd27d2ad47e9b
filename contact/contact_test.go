package contact

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"portfolio/schedule"
)

func validForm() Form {
	return Form{
		Name:    "Ada",
		Email:   "ada@example.com",
		Subject: "Internship",
		Message: "I would like to talk about the SOC role.",
	}
}

func TestValidateField(t *testing.T) {
	cases := []struct {
		field, value string
		valid        bool
		message      string
	}{
		{"name", "", false, "Name is required"},
		{"name", "   ", false, "Name is required"},
		{"name", " A ", false, "Name must be at least 2 characters long"},
		{"name", "Al", true, ""},
		{"email", "", false, "Email is required"},
		{"email", "ada@example", false, "Please enter a valid email address"},
		{"email", "ada example@x.io", false, "Please enter a valid email address"},
		{"email", " ada@example.com", false, "Please enter a valid email address"},
		{"email", "ada@example.com", true, ""},
		{"subject", "Hey", false, "Subject must be at least 5 characters long"},
		{"subject", "Hello", true, ""},
		{"message", "short", false, "Message must be at least 10 characters long"},
		{"message", "  only nine ", false, "Message must be at least 10 characters long"},
		{"message", "long enough!", true, ""},
	}

	for _, tc := range cases {
		res, err := ValidateField(tc.field, tc.value)
		require.NoError(t, err)
		assert.Equal(t, tc.valid, res.Valid, "%s=%q", tc.field, tc.value)
		assert.Equal(t, tc.message, res.Message, "%s=%q", tc.field, tc.value)
		assert.Equal(t, tc.field+"Error", res.ErrorID)
	}

	_, err := ValidateField("phone", "123")
	assert.ErrorIs(t, err, ErrUnknownField)
}

func TestValidateForm(t *testing.T) {
	res := Validate(validForm())
	assert.True(t, res.Valid)
	assert.Len(t, res.Fields, 4)

	form := validForm()
	form.Email = "nope"
	form.Subject = ""
	res = Validate(form)
	assert.False(t, res.Valid)
	assert.Equal(t, Fields(), []string{res.Fields[0].Field, res.Fields[1].Field, res.Fields[2].Field, res.Fields[3].Field})
	assert.True(t, res.Fields[0].Valid)
	assert.False(t, res.Fields[1].Valid)
	assert.Equal(t, "Subject is required", res.Fields[2].Message)
}

func TestSubmitRejectsInvalidForm(t *testing.T) {
	clock := schedule.NewManual()
	s := NewSubmitter(clock, DefaultSubmitTiming())

	_, err := s.Submit(Form{Name: "A"})
	require.Error(t, err)

	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.False(t, verr.Result.Valid)
	assert.Contains(t, err.Error(), "name")
	assert.Equal(t, 0, clock.Pending())
}

func TestSubmitLifecycle(t *testing.T) {
	clock := schedule.NewManual()
	s := NewSubmitter(clock, DefaultSubmitTiming())

	sub, err := s.Submit(validForm())
	require.NoError(t, err)
	assert.Equal(t, StatusSending, sub.Status)
	assert.NotEmpty(t, sub.ID)

	clock.Advance(1999 * time.Millisecond)
	got, ok := s.Get(sub.ID)
	require.True(t, ok)
	assert.Equal(t, StatusSending, got.Status)

	clock.Advance(time.Millisecond)
	got, _ = s.Get(sub.ID)
	assert.Equal(t, StatusSent, got.Status)
	assert.Equal(t, SuccessMessage, got.Message)
	assert.Equal(t, Form{}, got.Form)

	clock.Advance(5000 * time.Millisecond)
	got, _ = s.Get(sub.ID)
	assert.Equal(t, StatusHidden, got.Status)
	assert.Empty(t, got.Message)

	_, ok = s.Get("missing")
	assert.False(t, ok)
}
