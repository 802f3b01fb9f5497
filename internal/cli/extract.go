package cli

import "strings"

// ExtractOption scans an argument list the way git's own option grammar
// allows: it separates the value following the named option (supporting
// both "--opt value" and "--opt=value"), all other flag-like tokens, and
// the positional arguments, preserving relative order within each bucket.
// A prefix match on the option name mirrors git's handling of forms like
// "-mnewname". An empty name extracts no value.
func ExtractOption(name string, args []string) (value string, options []string, positional []string) {
	options = []string{}
	positional = []string{}

	for i := 0; i < len(args); i++ {
		arg := args[i]

		if name != "" && strings.HasPrefix(arg, name) {
			switch {
			case len(arg) > len(name) && arg[len(name)] == '=':
				value = arg[len(name)+1:]
			case len(arg) > len(name):
				value = arg[len(name):]
			case i+1 < len(args):
				i++
				value = args[i]
			}
			continue
		}

		if strings.HasPrefix(arg, "-") {
			options = append(options, arg)
		} else {
			positional = append(positional, arg)
		}
	}
	return value, options, positional
}
