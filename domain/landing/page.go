package landing

import (
	"embed"
	"html/template"
	"time"

	"github.com/akeren/daredash-waitlist/domain/waitlist"
)

//go:embed templates/*.html
var templateFS embed.FS

const pageTemplate = "index.html"

const (
	SuccessMessage = "You're in! Stay tuned in your inbox."
	ErrorMessage   = "Something went wrong. Please try again."
)

// FormStatus is the state of the signup form. The server renders idle,
// success and error; loading only exists in the browser while a request is
// in flight.
type FormStatus string

const (
	StatusIdle    FormStatus = "idle"
	StatusLoading FormStatus = "loading"
	StatusSuccess FormStatus = "success"
	StatusError   FormStatus = "error"
)

type ReferralOption struct {
	Value string
	Label string
}

var ReferralOptions = []ReferralOption{
	{Value: "instagram", Label: "Instagram"},
	{Value: "roger", Label: "Roger (in person)"},
	{Value: "linkedin", Label: "LinkedIn"},
	{Value: "other", Label: "Other"},
}

type PageData struct {
	Status          FormStatus
	Message         string
	Form            waitlist.CreateWaitlistEntryRequest
	Invalid         map[string]bool
	ReferralOptions []ReferralOption
	SuccessMessage  string
	ErrorMessage    string
	Year            int
}

func newPageData(status FormStatus, form waitlist.CreateWaitlistEntryRequest, now time.Time) PageData {
	data := PageData{
		Status:          status,
		Form:            form,
		Invalid:         map[string]bool{},
		ReferralOptions: ReferralOptions,
		SuccessMessage:  SuccessMessage,
		ErrorMessage:    ErrorMessage,
		Year:            now.Year(),
	}

	switch status {
	case StatusSuccess:
		data.Message = SuccessMessage
	case StatusError:
		data.Message = ErrorMessage
	}

	return data
}

// Templates parses the embedded page templates.
func Templates() *template.Template {
	return template.Must(template.ParseFS(templateFS, "templates/*.html"))
}
