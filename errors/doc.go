/*
Package errors implements the error model shared by every extension.

Reuse the root errors declared in this package whenever possible. If an
extension needs a custom one, declare it with Register(code, description)
during program startup; codes must be unique.

Create errors at the point of failure with ErrXyz.New, ErrXyz.Newf or
errors.Wrap(err, "...") so a stack trace is attached. Only the innermost wrap
records the stack.

Once you have an error, you can use `fmt.Printf/Sprintf` to get more context
	%s is just the error message
	%+v is the full stack trace
*/
package errors
