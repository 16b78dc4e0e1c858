package handler

import (
	"net/http"
	"strings"

	"github.com/deppfellow/roundtrip/internal/validation"
	"github.com/labstack/echo/v4"
)

// maxMultipartMemory matches net/http's default for ParseMultipartForm.
const maxMultipartMemory = 32 << 20

// SubmitTestRecordRequest carries one submission. UploadValue is nil when
// the body had no UploadValue field; an empty field is a non-nil "".
type SubmitTestRecordRequest struct {
	Method      string
	UploadValue *string
}

// Bind reads UploadValue from the request body only, urlencoded or
// multipart.
//
// Query parameters are ignored on purpose: echo's c.FormValue and
// req.FormValue merge the URL query into the result, so a field supplied as
// ?UploadValue=... would count as submitted. Only req.PostForm holds body
// values alone.
//
// Parse errors are not fatal either. ParseForm keeps every well-formed pair
// it managed to decode and only reports the first bad one, so a body such as
// "UploadValue=...&x=%zz" still carries the field. A body that is not a form
// at all (JSON, plain text) simply leaves PostForm empty and reads as a form
// without the field.
func (r *SubmitTestRecordRequest) Bind(c echo.Context) error {
	req := c.Request()
	r.Method = req.Method
	if req.Method != http.MethodPost {
		return nil
	}

	if strings.HasPrefix(req.Header.Get(echo.HeaderContentType), echo.MIMEMultipartForm) {
		_ = req.ParseMultipartForm(maxMultipartMemory)
	} else {
		_ = req.ParseForm()
	}

	if values, ok := req.PostForm[validation.UploadValueField]; ok && len(values) > 0 {
		value := values[0]
		r.UploadValue = &value
	}
	return nil
}

// Validate accepts every submission; rejections are outcomes, not request
// errors.
func (r *SubmitTestRecordRequest) Validate() error {
	return nil
}

// FetchTestRecordRequest has no parameters.
type FetchTestRecordRequest struct{}

func (r *FetchTestRecordRequest) Bind(echo.Context) error {
	return nil
}

func (r *FetchTestRecordRequest) Validate() error {
	return nil
}
