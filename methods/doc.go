// Package methods maps application payload types onto JSON-RPC method names.
//
// A registry is a static table built once from Method entries. Each entry
// binds a method name to one concrete payload type and the Codec that moves
// it in and out of params (or a result). The payload types usually form a
// sealed interface:
//
//	type Command interface{ command() }
//
//	commands := methods.MustCommands(
//		methods.Method[Command]("addTransaction", methods.Named[AddTransaction]()),
//		methods.Method[Command]("getBalance", methods.Positional[GetBalance]()),
//	)
//
//	cmd, err := commands.ReadOrError(req)
//	if err != nil {
//		return jsonrpc2.NewErrorResponse(*err, req.ID())
//	}
//	switch c := cmd.(type) {
//	case AddTransaction:
//	case GetBalance:
//	}
//
// Registries are immutable and safe for concurrent use.
package methods
