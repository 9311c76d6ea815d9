package controller

import (
	"fmt"

	"github.com/Veraticus/spice-ledger/internal/common"
	"github.com/Veraticus/spice-ledger/internal/request"
)

// SubmitFunc sends serialized form data and reports the outcome through
// done. A nil error means success.
type SubmitFunc func(data request.Data, done func(err error))

// AsyncForm is the validate, serialize, submit, on-result pipeline shared by
// every creation form.
type AsyncForm struct {
	element  FormElement
	submit   SubmitFunc
	validate func(request.Data) error
	onResult func(error)
	lastErr  error
	inFlight int
}

// FormOption configures an AsyncForm.
type FormOption func(*AsyncForm)

// WithValidator rejects data before it is sent.
func WithValidator(fn func(request.Data) error) FormOption {
	return func(f *AsyncForm) {
		f.validate = fn
	}
}

// WithResultHook runs after every completed submission.
func WithResultHook(fn func(error)) FormOption {
	return func(f *AsyncForm) {
		f.onResult = fn
	}
}

// NewAsyncForm binds the pipeline to element.
func NewAsyncForm(element FormElement, submit SubmitFunc, opts ...FormOption) (*AsyncForm, error) {
	if isNil(element) {
		return nil, ErrNoElement
	}
	if submit == nil {
		return nil, fmt.Errorf("submit function is required")
	}

	f := &AsyncForm{
		element:  element,
		submit:   submit,
		validate: func(request.Data) error { return nil },
		onResult: func(error) {},
	}
	for _, opt := range opts {
		opt(f)
	}
	return f, nil
}

// Element returns the bound form.
func (f *AsyncForm) Element() FormElement {
	return f.element
}

// Data serializes the current field values.
func (f *AsyncForm) Data() request.Data {
	values := f.element.Values()
	data := make(request.Data, len(values))
	for k, v := range values {
		data[k] = v
	}
	return data
}

// Submit validates and sends the form. Only validation errors are returned;
// the remote outcome goes to the result hook.
func (f *AsyncForm) Submit() error {
	data := f.Data()
	if err := f.validate(data); err != nil {
		f.lastErr = err
		return err
	}

	f.inFlight++
	f.submit(data, func(err error) {
		f.inFlight--
		f.lastErr = err
		if err != nil {
			common.LogDebug("Form submission failed", common.Fields{"error": err})
		}
		f.onResult(err)
	})
	return nil
}

// LastError returns the outcome of the most recent submission.
func (f *AsyncForm) LastError() error {
	return f.lastErr
}

// Pending reports how many submissions have not completed.
func (f *AsyncForm) Pending() int {
	return f.inFlight
}
