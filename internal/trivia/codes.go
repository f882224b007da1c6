package trivia

// Response codes carried in trivia API payloads.
const (
	codeSuccess          = 0
	codeNoResults        = 1
	codeInvalidParameter = 2
	codeTokenNotFound    = 3
	codeTokenEmpty       = 4
	codeRateLimit        = 5
)

// classifyResponseCode maps a payload response code to an error. present is
// false when the payload carried no response_code field at all, which is a
// protocol violation for endpoints that require one.
func classifyResponseCode(code int, present bool) error {
	if !present {
		return newError(KindGeneric, "Response code not found in API response")
	}

	switch code {
	case codeSuccess:
		return nil
	case codeNoResults:
		return newError(KindNoResults, "Not enough questions available for your query")
	case codeInvalidParameter:
		return newError(KindInvalidParameter, "Invalid parameters provided")
	case codeTokenNotFound:
		return newError(KindTokenNotFound, "Session token not found")
	case codeTokenEmpty:
		return newError(KindTokenEmpty, "Token has returned all possible questions")
	case codeRateLimit:
		return newError(KindRateLimit, "Rate limit exceeded. Please wait 5 seconds")
	default:
		return newError(KindGeneric, "Unknown error occurred: %d", code)
	}
}
