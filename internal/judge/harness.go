package judge

import (
	"fmt"
	"strings"
)

// Harness templates adapt a bare user-defined function into a program that
// reads combined stdin and writes one result line per input line. The driver
// splits each non-blank line on commas, coerces tokens int -> float -> string,
// and calls the challenge's entry-point function. If that function is not
// defined at runtime the driver prints nothing for the line; the evaluator
// treats missing output lines as failed test cases. Reserved driver names use
// a leading underscore so they never shadow user code.

const pythonDriver = `

# Auto-generated driver
import sys

def _coerce(token):
    try:
        return int(token)
    except ValueError:
        pass
    try:
        return float(token)
    except ValueError:
        return token

_entry = globals().get(%q)
for _line in sys.stdin:
    _line = _line.strip()
    if not _line:
        continue
    _args = [_coerce(_tok) for _tok in _line.split(",")]
    if callable(_entry):
        print(_entry(*_args))
`

const javascriptDriver = `

// Auto-generated driver
const _readline = require('readline');
const _rl = _readline.createInterface({ input: process.stdin, terminal: false });
const _coerce = (tok) => {
  const n = Number(tok);
  return tok.trim() !== '' && !Number.isNaN(n) ? n : tok;
};
_rl.on('line', (line) => {
  line = line.trim();
  if (!line) return;
  const args = line.split(',').map(_coerce);
  if (typeof %s === 'function') {
    console.log(%s(...args));
  }
});
`

// CompileHarness rewrites raw user source into a complete runnable program
// for the given language. Whole-program languages (and sources with no
// configured entry point) pass through unchanged. It is a pure string
// transform and cannot fail; a broken program only surfaces later through
// the judge's stderr or compile output.
func CompileHarness(source, language, entryPoint string) string {
	if entryPoint == "" {
		return source
	}
	switch language {
	case "python":
		return source + fmt.Sprintf(pythonDriver, entryPoint)
	case "javascript":
		return source + fmt.Sprintf(javascriptDriver, entryPoint, entryPoint)
	default:
		// cpp, java and anything else submit a complete program that does
		// its own stdin handling.
		return source
	}
}

// CombineStdin joins the test-case inputs into the single stdin stream the
// judge feeds the program, one input per line.
func CombineStdin(inputs []string) string {
	return strings.Join(inputs, "\n")
}
