package compiler

// beginScope enters a new lexical scope.
func (p *Parser) beginScope() {
	p.scopeDepth++
}

// endScope leaves the current lexical scope, emitting POP for every local
// declared inside it.
func (p *Parser) endScope() {
	p.scopeDepth--

	for len(p.locals) > 0 && p.locals[len(p.locals)-1].Depth > p.scopeDepth {
		p.emitByte(opPop)
		p.locals = p.locals[:len(p.locals)-1]
	}
}

// declareLocal registers name as a local in the current scope, after
// checking the current scope (only) for a duplicate name. Global variables
// are never declared here — only emitted via identifierConstant.
func (p *Parser) declareLocal(name string) {
	if p.scopeDepth == 0 {
		return
	}

	for i := len(p.locals) - 1; i >= 0; i-- {
		local := p.locals[i]
		if local.Depth != -1 && local.Depth < p.scopeDepth {
			break
		}
		if local.Name == name {
			p.error("Already a variable with this name in this scope.")
			return
		}
	}

	p.addLocal(name)
}

func (p *Parser) addLocal(name string) {
	if len(p.locals) >= maxLocals {
		p.error("Too many local variables in function.")
		return
	}
	p.locals = append(p.locals, Local{Name: name, Depth: -1})
}

// markInitialized sets the most recently declared local's depth to the
// current scope depth, making it visible to later reads. Called after the
// initializer expression is compiled.
func (p *Parser) markInitialized() {
	if p.scopeDepth == 0 {
		return
	}
	p.locals[len(p.locals)-1].Depth = p.scopeDepth
}

// resolveLocal scans locals from top to bottom for name, returning its
// slot index, or -1 if name is not a local.
func (p *Parser) resolveLocal(name string) int {
	for i := len(p.locals) - 1; i >= 0; i-- {
		if p.locals[i].Name == name {
			if p.locals[i].Depth == -1 {
				p.error("Can't read local variable in its own initializer.")
			}
			return i
		}
	}
	return -1
}
