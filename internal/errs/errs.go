// Package errs defines the error types returned to API clients.
//
// Every failure a handler can produce is expressed as an *HTTPError so the
// global error handler can write one consistent JSON shape:
//
//	{"erro": "Dados inválidos", "mensagem": "...", "campos": [...]}
//
// Empty members are omitted, so a not-found error serializes as
// {"mensagem": "Imagem não encontrada"}.
package errs
