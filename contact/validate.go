package contact

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ErrUnknownField 不存在的表单字段
var ErrUnknownField = errors.New("未知的表单字段")

// emailPattern 与页面上的校验规则保持一致
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("contact_email", func(fl validator.FieldLevel) bool {
		return emailPattern.MatchString(fl.Field().String())
	})
	return v
}

// Form 联系表单
type Form struct {
	Name    string `json:"name" form:"name"`
	Email   string `json:"email" form:"email"`
	Subject string `json:"subject" form:"subject"`
	Message string `json:"message" form:"message"`
}

// FieldResult 单个字段的校验结果
type FieldResult struct {
	Field   string `json:"field"`
	ErrorID string `json:"errorId"` // 页面上显示错误信息的元素 ID
	Valid   bool   `json:"valid"`
	Message string `json:"message,omitempty"`
}

// Result 整个表单的校验结果，字段按页面顺序排列
type Result struct {
	Valid  bool          `json:"valid"`
	Fields []FieldResult `json:"fields"`
}

// ValidationError 表单校验未通过
type ValidationError struct {
	Result Result
}

func (e *ValidationError) Error() string {
	var invalid []string
	for _, f := range e.Result.Fields {
		if !f.Valid {
			invalid = append(invalid, f.Field)
		}
	}
	return fmt.Sprintf("表单校验未通过: %s", strings.Join(invalid, ", "))
}

type rule struct {
	field   string
	label   string
	minLen  int
	pattern bool
	message string // 格式或长度不满足时的提示
}

var rules = []rule{
	{field: "name", label: "Name", minLen: 2, message: "Name must be at least 2 characters long"},
	{field: "email", label: "Email", pattern: true, message: "Please enter a valid email address"},
	{field: "subject", label: "Subject", minLen: 5, message: "Subject must be at least 5 characters long"},
	{field: "message", label: "Message", minLen: 10, message: "Message must be at least 10 characters long"},
}

// Fields 返回按页面顺序排列的字段名
func Fields() []string {
	fields := make([]string, len(rules))
	for i, r := range rules {
		fields[i] = r.field
	}
	return fields
}

// ValidateField 校验单个字段，对应页面上失去焦点时的即时校验
func ValidateField(field, value string) (FieldResult, error) {
	for _, r := range rules {
		if r.field == field {
			return r.check(value), nil
		}
	}
	return FieldResult{}, fmt.Errorf("%w: %s", ErrUnknownField, field)
}

// Validate 校验整个表单
func Validate(form Form) Result {
	values := form.values()
	result := Result{Valid: true, Fields: make([]FieldResult, 0, len(rules))}
	for _, r := range rules {
		fr := r.check(values[r.field])
		if !fr.Valid {
			result.Valid = false
		}
		result.Fields = append(result.Fields, fr)
	}
	return result
}

func (f Form) values() map[string]string {
	return map[string]string{
		"name":    f.Name,
		"email":   f.Email,
		"subject": f.Subject,
		"message": f.Message,
	}
}

func (r rule) check(value string) FieldResult {
	res := FieldResult{Field: r.field, ErrorID: r.field + "Error"}
	trimmed := strings.TrimSpace(value)

	if err := validate.Var(trimmed, "required"); err != nil {
		res.Message = r.label + " is required"
		return res
	}
	if r.minLen > 0 {
		if err := validate.Var(trimmed, fmt.Sprintf("min=%d", r.minLen)); err != nil {
			res.Message = r.message
			return res
		}
	}
	// 邮箱格式对原始输入校验，首尾空白视为格式错误
	if r.pattern {
		if err := validate.Var(value, "contact_email"); err != nil {
			res.Message = r.message
			return res
		}
	}

	res.Valid = true
	return res
}
