package audit

import "fmt"

// CategorizeEvent represents an SMS categorization audit event
type CategorizeEvent struct {
	ClientID     string
	ClientIP     string
	Category     string
	Confidence   float64
	Amount       float64
	Merchant     string
	Success      bool
	ErrorMessage string
}

func (e CategorizeEvent) MessageID() string {
	return "categorize"
}

func (e CategorizeEvent) Message() string {
	client := e.ClientID
	if client == "" {
		client = "anonymous"
	}
	if e.Success {
		return fmt.Sprintf("%s categorized an SMS as %s (confidence %.2f)", client, e.Category, e.Confidence)
	}
	msg := fmt.Sprintf("%s failed to categorize an SMS", client)
	if e.ErrorMessage != "" {
		msg += ": " + e.ErrorMessage
	}
	return msg
}

func (e CategorizeEvent) Severity() Severity {
	if e.Success {
		return SeverityInfo
	}
	return SeverityWarning
}

func (e CategorizeEvent) Facility() int {
	return FacilityUser
}

func (e CategorizeEvent) StructuredData() map[string]map[string]string {
	sd := map[string]map[string]string{
		SDIDAuth: {
			"client": e.ClientID,
		},
		SDIDClient: {
			"ip": e.ClientIP,
		},
		SDIDAction: {
			"operation": "categorize",
		},
	}
	if e.Success {
		sd[SDIDAction]["result"] = "success"
		sd[SDIDSubject] = map[string]string{
			"category":   e.Category,
			"confidence": fmt.Sprintf("%.2f", e.Confidence),
			"amount":     fmt.Sprintf("%.2f", e.Amount),
			"merchant":   e.Merchant,
		}
	} else {
		sd[SDIDAction]["result"] = "failure"
	}
	return sd
}
