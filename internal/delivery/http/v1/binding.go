package v1

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

// bindJSON decodes the request body into obj, rejecting fields obj does not
// declare or trailing data after the first value, then runs the binding
// validator. An empty body decodes as {}.
func bindJSON(c *gin.Context, obj any) error {
	if c.Request.Body != nil {
		decoder := json.NewDecoder(c.Request.Body)
		decoder.DisallowUnknownFields()
		err := decoder.Decode(obj)
		if err != nil && !errors.Is(err, io.EOF) {
			return fmt.Errorf("%w: %w", errInvalidRequestBody, err)
		}
		if err == nil {
			err = decoder.Decode(&struct{}{})
			if !errors.Is(err, io.EOF) {
				return fmt.Errorf("%w: unexpected data after json body", errInvalidRequestBody)
			}
		}
	}

	err := binding.Validator.ValidateStruct(obj)
	if err != nil {
		return fmt.Errorf("%w: %w", errInvalidRequestBody, err)
	}
	return nil
}

const dateLayout = time.DateOnly

// dueDate accepts RFC 3339 timestamps as well as bare dates.
type dueDate struct {
	time.Time
}

func (d *dueDate) UnmarshalJSON(data []byte) error {
	var s string
	err := json.Unmarshal(data, &s)
	if err != nil {
		return fmt.Errorf("due date must be a string: %w", err)
	}

	s = strings.TrimSpace(s)
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		t, err = time.Parse(dateLayout, s)
		if err != nil {
			return fmt.Errorf("invalid due date %q", s)
		}
	}
	d.Time = t.UTC()
	return nil
}

func (d *dueDate) timePtr() *time.Time {
	if d == nil {
		return nil
	}
	t := d.Time
	return &t
}
