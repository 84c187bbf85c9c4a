package types

// TranscriptionResult is the normalized output of one transcription
type TranscriptionResult struct {
	Text            string
	IsUpdateCommand bool
}

// TranscribeResponse is returned by POST /transcribe
type TranscribeResponse struct {
	Text    string `json:"text"`
	Success bool   `json:"success"`
}

// CommandResponse is returned by POST /command
type CommandResponse struct {
	Text            string `json:"text"`
	IsUpdateCommand bool   `json:"is_update_command"`
	Success         bool   `json:"success"`
	Mock            bool   `json:"mock,omitempty"`
}

// TranscriptionError is the JSON body of every transcription service error
type TranscriptionError struct {
	Error   string `json:"error"`
	Success bool   `json:"success"`
}
