package advise

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/AndreyAkinshin/execexam/internal/errors"
)

// ValidateURL reports whether s is an absolute http or https URL with a host.
// Any whitespace makes the URL invalid.
func ValidateURL(s string) bool {
	if s == "" || strings.ContainsAny(s, " \t\r\n") {
		return false
	}
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// CheckAdviceModel fails when advice is selected but no model is named.
func CheckAdviceModel(reports Selection, model string) error {
	if reports.Has(ReportTestAdvice) && strings.TrimSpace(model) == "" {
		return errors.Advice("test advice needs a model; set --advice-model or advice.model", nil)
	}
	return nil
}

// CheckAdviceServer fails when advice is selected through an API server
// whose URL is missing or invalid.
func CheckAdviceServer(reports Selection, method Method, server string) error {
	if !reports.Has(ReportTestAdvice) || method != MethodAPIServer {
		return nil
	}
	if server == "" {
		return errors.Advice("test advice through an API server needs --advice-server or advice.server", nil)
	}
	if !ValidateURL(server) {
		return errors.Advice(fmt.Sprintf("advice server %q is not a valid http(s) URL", server), nil)
	}
	return nil
}
