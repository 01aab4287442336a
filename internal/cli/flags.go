package cli

import (
	"fmt"
	"strings"

	"github.com/AndreyAkinshin/execexam/internal/advise"
	"github.com/AndreyAkinshin/execexam/internal/config"
	"github.com/AndreyAkinshin/execexam/internal/errors"
)

// commandFlags holds the flags shared by run and summarize.
// Empty strings mean the flag was not given.
type commandFlags struct {
	noLookup     bool
	reports      []string
	adviceModel  string
	adviceMethod string
	adviceServer string
	positional   []string
}

// valueFlags take a value either as "--flag=value" or as the next argument.
var valueFlags = []string{"--report", "--advice-model", "--advice-method", "--advice-server"}

// parseCommandFlags separates command flags from positional arguments.
// "--report" may be repeated and each value may list several types.
// A lone "-" is positional (standard input).
func parseCommandFlags(args []string, allowNoLookup bool) (*commandFlags, error) {
	f := &commandFlags{}
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if arg == "-" || !strings.HasPrefix(arg, "-") {
			f.positional = append(f.positional, arg)
			continue
		}
		if arg == "--no-lookup" && allowNoLookup {
			f.noLookup = true
			continue
		}

		name, value, hasValue := strings.Cut(arg, "=")
		if !isValueFlag(name) {
			return nil, fmt.Errorf("unknown flag %s", arg)
		}
		if !hasValue {
			if i+1 >= len(args) {
				return nil, fmt.Errorf("%s requires a value", name)
			}
			i++
			value = args[i]
		}
		if value == "" {
			return nil, fmt.Errorf("%s requires a value", name)
		}

		switch name {
		case "--report":
			f.reports = append(f.reports, value)
		case "--advice-model":
			f.adviceModel = value
		case "--advice-method":
			f.adviceMethod = value
		case "--advice-server":
			f.adviceServer = value
		}
	}
	return f, nil
}

func isValueFlag(name string) bool {
	for _, v := range valueFlags {
		if v == name {
			return true
		}
	}
	return false
}

// reportOptions are the resolved report selection and advice settings.
type reportOptions struct {
	reports advise.Selection
	advice  advise.ClientConfig
}

// resolveReportOptions merges flags over the configuration and checks that
// requested advice can be given. Unknown report types or methods are
// configuration errors; a missing model or bad server URL is an advice error.
func resolveReportOptions(cfg *config.Config, f *commandFlags) (*reportOptions, error) {
	names := cfg.Display.Report
	if len(f.reports) > 0 {
		names = f.reports
	}
	reports, err := advise.ParseReportTypes(names)
	if err != nil {
		return nil, err
	}

	methodName := cfg.Advice.Method
	if f.adviceMethod != "" {
		methodName = f.adviceMethod
	}
	method, err := advise.ParseMethod(methodName)
	if err != nil {
		return nil, err
	}

	cc := advise.ClientConfig{
		Method: method,
		Model:  firstNonEmpty(f.adviceModel, cfg.Advice.Model),
		Server: firstNonEmpty(f.adviceServer, cfg.Advice.Server),
		KeyEnv: cfg.Advice.KeyEnv,
	}
	if err := advise.CheckAdviceModel(reports, cc.Model); err != nil {
		return nil, err
	}
	if err := advise.CheckAdviceServer(reports, cc.Method, cc.Server); err != nil {
		return nil, err
	}
	return &reportOptions{reports: reports, advice: cc}, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// printReportFlags prints help for the flags both commands accept.
func printReportFlags() {
	out.HelpFlag("--report=<types>", "Sections to print: all, setup, testoutput, testfailures,", widthFlag)
	out.HelpFlag("", "testcodes, testassertions, testadvice (default: all)", widthFlag)
	out.HelpFlag("--advice-model=<m>", "Model used for testadvice", widthFlag)
	out.HelpFlag("--advice-method=<m>", "apikey (hosted API, key from env) or apiserver", widthFlag)
	out.HelpFlag("--advice-server=<url>", "Base URL of the advice API", widthFlag)
}

// flagError reports a bad command flag and returns the configuration exit code.
func flagError(cmd string, err error) int {
	out.ErrorPrefix("%s: %v", cmd, err)
	out.Errorln("Run 'execexam %s --help' for usage.", cmd)
	return errors.ExitConfigError
}
