package audit

import "fmt"

// TrainEvent represents a model training audit event
type TrainEvent struct {
	ClientID     string
	ClientIP     string
	SampleCount  int
	ModelPath    string
	Success      bool
	ErrorMessage string
}

func (e TrainEvent) MessageID() string {
	return "train"
}

func (e TrainEvent) Message() string {
	client := e.ClientID
	if client == "" {
		client = "operator"
	}
	if e.Success {
		return fmt.Sprintf("%s retrained the model from %d samples", client, e.SampleCount)
	}
	msg := fmt.Sprintf("%s failed to retrain the model", client)
	if e.ErrorMessage != "" {
		msg += ": " + e.ErrorMessage
	}
	return msg
}

func (e TrainEvent) Severity() Severity {
	if e.Success {
		return SeverityNotice
	}
	return SeverityWarning
}

func (e TrainEvent) Facility() int {
	return FacilityUser
}

func (e TrainEvent) StructuredData() map[string]map[string]string {
	result := "success"
	if !e.Success {
		result = "failure"
	}
	return map[string]map[string]string{
		SDIDAuth: {
			"client": e.ClientID,
		},
		SDIDClient: {
			"ip": e.ClientIP,
		},
		SDIDModel: {
			"samples": fmt.Sprintf("%d", e.SampleCount),
			"path":    e.ModelPath,
		},
		SDIDAction: {
			"operation": "train",
			"result":    result,
		},
	}
}

// ReloadEvent represents a model reload audit event
type ReloadEvent struct {
	ClientID     string
	ModelPath    string
	Success      bool
	ErrorMessage string
}

func (e ReloadEvent) MessageID() string {
	return "reload"
}

func (e ReloadEvent) Message() string {
	client := e.ClientID
	if client == "" {
		client = "operator"
	}
	if e.Success {
		return fmt.Sprintf("%s reloaded the model from %s", client, e.ModelPath)
	}
	msg := fmt.Sprintf("%s failed to reload the model from %s", client, e.ModelPath)
	if e.ErrorMessage != "" {
		msg += ": " + e.ErrorMessage
	}
	return msg
}

func (e ReloadEvent) Severity() Severity {
	if e.Success {
		return SeverityNotice
	}
	return SeverityWarning
}

func (e ReloadEvent) Facility() int {
	return FacilityUser
}

func (e ReloadEvent) StructuredData() map[string]map[string]string {
	result := "success"
	if !e.Success {
		result = "failure"
	}
	return map[string]map[string]string{
		SDIDAuth: {
			"client": e.ClientID,
		},
		SDIDModel: {
			"path": e.ModelPath,
		},
		SDIDAction: {
			"operation": "reload",
			"result":    result,
		},
	}
}
