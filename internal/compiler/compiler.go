// Package compiler implements the single-pass Pratt compiler: it consumes
// a token stream from the lexer and emits a chunk.Chunk directly, with no
// intervening AST. Scope tracking, jump patching, and local/global
// variable resolution all happen inline as tokens are consumed.
package compiler

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"rox/internal/chunk"
	"rox/internal/lexer"
	"rox/internal/table"
	"rox/internal/token"
	"rox/internal/value"
)

// parseFn tags the small, fixed set of prefix/infix actions a token can
// trigger. A table of tags dispatched by a single switch avoids the
// per-token closure allocation (and the borrow-checker fights the
// reference implementation has) that a table of boxed functions would
// need in a language with first-class closures.
type parseFn int

const (
	fnNone parseFn = iota
	fnBinary
	fnUnary
	fnLiteral
	fnGrouping
	fnNumber
	fnString
	fnVariable
	fnAnd
	fnOr
)

type parseRule struct {
	prefix     parseFn
	infix      parseFn
	precedence Precedence
}

var rules = map[token.Type]parseRule{
	token.LeftParen:    {fnGrouping, fnNone, PrecNone},
	token.Minus:        {fnUnary, fnBinary, PrecTerm},
	token.Plus:         {fnNone, fnBinary, PrecTerm},
	token.Slash:        {fnNone, fnBinary, PrecFactor},
	token.Star:         {fnNone, fnBinary, PrecFactor},
	token.Bang:         {fnUnary, fnNone, PrecNone},
	token.BangEqual:    {fnNone, fnBinary, PrecEquality},
	token.Equal:        {fnNone, fnNone, PrecNone},
	token.EqualEqual:   {fnNone, fnBinary, PrecEquality},
	token.Greater:      {fnNone, fnBinary, PrecComparison},
	token.GreaterEqual: {fnNone, fnBinary, PrecComparison},
	token.Less:         {fnNone, fnBinary, PrecComparison},
	token.LessEqual:    {fnNone, fnBinary, PrecComparison},
	token.Identifier:   {fnVariable, fnNone, PrecNone},
	token.String:       {fnString, fnNone, PrecNone},
	token.Number:       {fnNumber, fnNone, PrecNone},
	token.And:          {fnNone, fnAnd, PrecAnd},
	token.Or:           {fnNone, fnOr, PrecOr},
	token.True:         {fnLiteral, fnNone, PrecNone},
	token.False:        {fnLiteral, fnNone, PrecNone},
	token.Nil:          {fnLiteral, fnNone, PrecNone},
}

func ruleFor(t token.Type) parseRule {
	if r, ok := rules[t]; ok {
		return r
	}
	return parseRule{fnNone, fnNone, PrecNone}
}

// Compiler owns the token stream by value (by repeated advance, not by
// reference), eliminating the need for interior-mutable cells shared
// between parser and chunk: there is exactly one owner of all compile-time
// state.
type Compiler struct {
	lex *lexer.Lexer

	current  token.Token
	previous token.Token

	hadError  bool
	panicMode bool
	errOut    io.Writer

	chunk *chunk.Chunk

	locals     localsTable
	scopeDepth int

	// identifiers interns identifier-name constants so repeated
	// references to the same name share one constant-pool slot (spec
	// §4.3 "Identifier interning"). String literals are not interned;
	// each one gets its own constant.
	identifiers *table.Table[int]
}

// New creates a compiler for a fresh top-level chunk.
func New(name string) *Compiler {
	return &Compiler{
		chunk:       chunk.New(name),
		identifiers: table.New[int](8),
		errOut:      os.Stderr,
	}
}

// Compile lexes and compiles source into a Chunk. On success it returns
// the chunk and ok=true. On failure it returns ok=false after writing
// each reported error to the compiler's error sink (while in panic mode,
// further errors are suppressed until the next statement boundary); the
// returned chunk must not be executed.
func Compile(source string, name string) (*chunk.Chunk, bool) {
	c := New(name)
	c.lex = lexer.New(source)
	c.advance()

	for !c.match(token.EOF) {
		c.declaration()
	}
	c.emitReturn()

	return c.chunk, !c.hadError
}

func (c *Compiler) advance() {
	c.previous = c.current
	for {
		c.current = c.lex.NextToken()
		if c.current.Type != token.Error {
			break
		}
		c.errorAtCurrent(c.current.Lexeme)
	}
}

func (c *Compiler) check(t token.Type) bool {
	return c.current.Type == t
}

func (c *Compiler) match(t token.Type) bool {
	if !c.check(t) {
		return false
	}
	c.advance()
	return true
}

func (c *Compiler) consume(t token.Type, msg string) {
	if c.current.Type == t {
		c.advance()
		return
	}
	c.errorAtCurrent(msg)
}

func (c *Compiler) errorAtCurrent(msg string) { c.errorAt(c.current, msg) }
func (c *Compiler) error(msg string)          { c.errorAt(c.previous, msg) }

func (c *Compiler) errorAt(tok token.Token, msg string) {
	if c.panicMode {
		return
	}
	c.panicMode = true
	c.hadError = true
	fmt.Fprintf(c.errOut, "Error at [%d, %d] with message: %s\n", tok.Line, tok.Column, msg)
}

// synchronize discards tokens until a likely statement boundary, so
// parsing can continue and report further independent errors.
func (c *Compiler) synchronize() {
	c.panicMode = false
	for c.current.Type != token.EOF {
		if c.previous.Type == token.Semicolon {
			return
		}
		switch c.current.Type {
		case token.Class, token.Fun, token.Var, token.For, token.If, token.While, token.Print, token.Return:
			return
		}
		c.advance()
	}
}

// parse implements the Pratt loop (spec §4.3): it runs a prefix action
// for the just-advanced token, then repeatedly consumes infix operators
// whose precedence is at least minPrec.
func (c *Compiler) parse(minPrec Precedence) {
	c.advance()
	rule := ruleFor(c.previous.Type)
	if rule.prefix == fnNone {
		if c.previous.Type == token.EOF {
			return
		}
		c.error("expect expression")
		return
	}

	canAssign := minPrec <= PrecAssign
	c.runPrefix(rule.prefix, canAssign)

	for ruleFor(c.current.Type).precedence >= minPrec {
		c.advance()
		infixRule := ruleFor(c.previous.Type)
		c.runInfix(infixRule.infix, canAssign)
	}

	if canAssign && c.match(token.Equal) {
		c.error("invalid assignment target")
	}
}

func (c *Compiler) runPrefix(fn parseFn, canAssign bool) {
	switch fn {
	case fnNumber:
		c.number()
	case fnString:
		c.string_()
	case fnGrouping:
		c.grouping()
	case fnUnary:
		c.unary()
	case fnLiteral:
		c.literal()
	case fnVariable:
		c.variable(canAssign)
	default:
		panic("compiler: no prefix handler registered")
	}
}

func (c *Compiler) runInfix(fn parseFn, canAssign bool) {
	switch fn {
	case fnBinary:
		c.binary()
	case fnAnd:
		c.and_()
	case fnOr:
		c.or_()
	default:
		panic("compiler: no infix handler registered")
	}
}

func (c *Compiler) expression() {
	c.parse(PrecAssign)
}

// ---- declarations & statements ----

func (c *Compiler) declaration() {
	if c.match(token.Var) {
		c.varDeclaration()
	} else {
		c.statement()
	}
	if c.panicMode {
		c.synchronize()
	}
}

func (c *Compiler) varDeclaration() {
	global := c.parseVariable("expect variable name")

	if c.match(token.Equal) {
		c.expression()
	} else {
		c.emit(chunk.OpNil, 0)
	}
	c.consume(token.Semicolon, "expect ';' after variable declaration")

	c.defineVariable(global)
}

// parseVariable consumes an identifier, declares it (locals only — a
// global is resolved by name at runtime, so declaring one is a no-op),
// and returns the constant-pool index to pass to defineVariable. For
// locals the return value is unused.
func (c *Compiler) parseVariable(errMsg string) int {
	c.consume(token.Identifier, errMsg)
	c.declareVariable()
	if c.scopeDepth > 0 {
		return 0
	}
	return c.identifierConstant(c.previous.Lexeme)
}

func (c *Compiler) declareVariable() {
	if c.scopeDepth == 0 {
		return
	}
	name := c.previous
	if c.locals.isDoublyDeclared(name.Lexeme, c.scopeDepth) {
		c.error("already a variable with this name in scope")
		return
	}
	if c.locals.size() >= maxLocals {
		c.error("too many local variables in function")
		return
	}
	c.locals.add(name)
}

func (c *Compiler) defineVariable(global int) {
	if c.scopeDepth > 0 {
		c.locals.initialize(c.scopeDepth)
		return
	}
	c.emit(chunk.OpDefineGlobal, global)
}

func (c *Compiler) identifierConstant(name string) int {
	if idx, ok := c.identifiers.Get(name); ok {
		return idx
	}
	idx := c.chunk.AddConstant(value.NewStringValue(name))
	c.identifiers.Set(name, idx)
	return idx
}

func (c *Compiler) statement() {
	switch {
	case c.match(token.Print):
		c.printStatement()
	case c.match(token.If):
		c.ifStatement()
	case c.match(token.While):
		c.whileStatement()
	case c.match(token.For):
		c.forStatement()
	case c.match(token.LeftBrace):
		c.beginScope()
		c.block()
		c.endScope()
	default:
		c.expressionStatement()
	}
}

func (c *Compiler) printStatement() {
	c.expression()
	c.consume(token.Semicolon, "expect ';' after value")
	c.emit(chunk.OpPrint, 0)
}

func (c *Compiler) expressionStatement() {
	c.expression()
	c.consume(token.Semicolon, "expect ';' after expression")
	c.emit(chunk.OpPop, 0)
}

func (c *Compiler) block() {
	for !c.check(token.RightBrace) && !c.check(token.EOF) {
		c.declaration()
	}
	c.consume(token.RightBrace, "expect '}' after block")
}

func (c *Compiler) beginScope() { c.scopeDepth++ }

func (c *Compiler) endScope() {
	c.scopeDepth--
	popped := c.locals.removeAbove(c.scopeDepth)
	for i := 0; i < popped; i++ {
		c.emit(chunk.OpPop, 0)
	}
}

func (c *Compiler) ifStatement() {
	c.consume(token.LeftParen, "expect '(' after 'if'")
	c.expression()
	c.consume(token.RightParen, "expect ')' after condition")

	thenJump := c.emitJump(chunk.OpJumpIfFalse)
	c.emit(chunk.OpPop, 0)
	c.statement()

	elseJump := c.emitJump(chunk.OpJump)
	c.patchJump(thenJump)
	c.emit(chunk.OpPop, 0)

	if c.match(token.Else) {
		c.statement()
	}
	c.patchJump(elseJump)
}

func (c *Compiler) whileStatement() {
	loopStart := len(c.chunk.Code)
	c.consume(token.LeftParen, "expect '(' after 'while'")
	c.expression()
	c.consume(token.RightParen, "expect ')' after condition")

	exitJump := c.emitJump(chunk.OpJumpIfFalse)
	c.emit(chunk.OpPop, 0)
	c.statement()
	c.emitLoop(loopStart)

	c.patchJump(exitJump)
	c.emit(chunk.OpPop, 0)
}

func (c *Compiler) forStatement() {
	c.beginScope()
	c.consume(token.LeftParen, "expect '(' after 'for'")

	switch {
	case c.match(token.Semicolon):
		// no initializer
	case c.match(token.Var):
		c.varDeclaration()
	default:
		c.expressionStatement()
	}

	loopStart := len(c.chunk.Code)
	exitJump := -1
	if !c.match(token.Semicolon) {
		c.expression()
		c.consume(token.Semicolon, "expect ';' after loop condition")
		exitJump = c.emitJump(chunk.OpJumpIfFalse)
		c.emit(chunk.OpPop, 0)
	}

	if !c.check(token.RightParen) {
		bodyJump := c.emitJump(chunk.OpJump)
		incrementStart := len(c.chunk.Code)
		c.expression()
		c.emit(chunk.OpPop, 0)
		c.consume(token.RightParen, "expect ')' after for clauses")

		c.emitLoop(loopStart)
		loopStart = incrementStart
		c.patchJump(bodyJump)
	} else {
		c.consume(token.RightParen, "expect ')' after for clauses")
	}

	c.statement()
	c.emitLoop(loopStart)

	if exitJump != -1 {
		c.patchJump(exitJump)
		c.emit(chunk.OpPop, 0)
	}
	c.endScope()
}

// ---- expressions ----

func (c *Compiler) number() {
	n, err := strconv.ParseFloat(c.previous.Lexeme, 64)
	if err != nil {
		c.error("invalid number literal")
		return
	}
	c.emitConstant(value.NumberVal(n))
}

func (c *Compiler) string_() {
	c.emitConstant(value.NewStringValue(c.previous.Lexeme))
}

func (c *Compiler) literal() {
	switch c.previous.Type {
	case token.True:
		c.emit(chunk.OpTrue, 0)
	case token.False:
		c.emit(chunk.OpFalse, 0)
	case token.Nil:
		c.emit(chunk.OpNil, 0)
	}
}

func (c *Compiler) grouping() {
	c.expression()
	c.consume(token.RightParen, "expect ')' after expression")
}

func (c *Compiler) unary() {
	opType := c.previous.Type
	c.parse(PrecUnary)
	switch opType {
	case token.Minus:
		c.emit(chunk.OpNegate, 0)
	case token.Bang:
		c.emit(chunk.OpNot, 0)
	}
}

func (c *Compiler) binary() {
	opType := c.previous.Type
	rule := ruleFor(opType)
	c.parse(rule.precedence.next())

	switch opType {
	case token.Plus:
		c.emit(chunk.OpAdd, 0)
	case token.Minus:
		c.emit(chunk.OpSubtract, 0)
	case token.Star:
		c.emit(chunk.OpMultiply, 0)
	case token.Slash:
		c.emit(chunk.OpDivide, 0)
	case token.EqualEqual:
		c.emit(chunk.OpEqual, 0)
	case token.BangEqual:
		c.emit(chunk.OpEqual, 0)
		c.emit(chunk.OpNot, 0)
	case token.Greater:
		c.emit(chunk.OpGreater, 0)
	case token.GreaterEqual:
		c.emit(chunk.OpLess, 0)
		c.emit(chunk.OpNot, 0)
	case token.Less:
		c.emit(chunk.OpLess, 0)
	case token.LessEqual:
		c.emit(chunk.OpGreater, 0)
		c.emit(chunk.OpNot, 0)
	}
}

func (c *Compiler) and_() {
	endJump := c.emitJump(chunk.OpJumpIfFalse)
	c.emit(chunk.OpPop, 0)
	c.parse(PrecAnd)
	c.patchJump(endJump)
}

func (c *Compiler) or_() {
	elseJump := c.emitJump(chunk.OpJumpIfFalse)
	endJump := c.emitJump(chunk.OpJump)
	c.patchJump(elseJump)
	c.emit(chunk.OpPop, 0)
	c.parse(PrecOr)
	c.patchJump(endJump)
}

func (c *Compiler) variable(canAssign bool) {
	c.namedVariable(c.previous, canAssign)
}

func (c *Compiler) namedVariable(name token.Token, canAssign bool) {
	slot, initialized := c.locals.resolve(name.Lexeme)

	if slot != -1 && !initialized {
		c.error("can't read local variable in its own initializer")
		return
	}

	if slot != -1 {
		if canAssign && c.match(token.Equal) {
			c.expression()
			c.emit(chunk.OpSetLocal, slot)
		} else {
			c.emit(chunk.OpGetLocal, slot)
		}
		return
	}

	idx := c.identifierConstant(name.Lexeme)
	if canAssign && c.match(token.Equal) {
		c.expression()
		c.emit(chunk.OpSetGlobal, idx)
	} else {
		c.emit(chunk.OpGetGlobal, idx)
	}
}

// ---- bytecode emission ----

func (c *Compiler) emit(op chunk.OpCode, operand int) int {
	return c.chunk.Write(op, operand, c.previous.Line)
}

func (c *Compiler) emitReturn() {
	c.emit(chunk.OpReturn, 0)
}

func (c *Compiler) emitConstant(v value.Value) {
	idx := c.chunk.AddConstant(v)
	c.emit(chunk.OpConstant, idx)
}

// emitJump emits op with a placeholder offset and returns its index for a
// later patchJump call.
func (c *Compiler) emitJump(op chunk.OpCode) int {
	return c.emit(op, 0)
}

// patchJump rewrites the jump at idx to land just past the instruction
// most recently emitted (a forward distance).
func (c *Compiler) patchJump(idx int) {
	jump := len(c.chunk.Code) - idx - 1
	if jump > 65535 {
		c.error("loop body too large")
		return
	}
	c.chunk.Code[idx].Operand = jump
}

// emitLoop emits OpLoop with a backward distance to loopStart.
func (c *Compiler) emitLoop(loopStart int) {
	idx := len(c.chunk.Code)
	offset := idx - loopStart + 1
	if offset > 65535 {
		c.error("loop body too large")
	}
	c.chunk.Write(chunk.OpLoop, offset, c.previous.Line)
}
