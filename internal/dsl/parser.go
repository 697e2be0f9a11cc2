package dsl

import (
	"strconv"

	"github.com/andrei91ro/pcolsim/internal/colony"
	"github.com/andrei91ro/pcolsim/internal/multiset"
	"github.com/andrei91ro/pcolsim/internal/rule"
	"github.com/andrei91ro/pcolsim/internal/swarm"
)

// ParseResult is a tagged union over the two possible top-level
// parses: exactly one of Pcolony or Pswarm is non-nil. Two named
// fields on a plain struct keep every production's result type
// explicit at compile time, with no dynamic dispatch on a shared
// "parent" value.
type ParseResult struct {
	Pcolony *colony.Pcolony
	Pswarm  *swarm.Pswarm
}

// Parser is a recursive-descent parser over a pre-lexed token stream.
// Each parse* method owns a specific grammar production and returns a
// concretely typed result; there is no dynamic dispatch on a shared
// "parent" value.
type Parser struct {
	tokens []Token
	pos    int
}

// NewParser wraps a token stream (as produced by Lex) for parsing.
func NewParser(tokens []Token) *Parser {
	return &Parser{tokens: tokens}
}

// Parse parses a full input file: a single top-level assignment,
// `pswarm = swarm_body ;` or `IDENT = colony_body ;`.
func (p *Parser) Parse() (*ParseResult, error) {
	nameTok, err := p.expect(TokID)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(TokAssign); err != nil {
		return nil, err
	}

	if nameTok.Value == "pswarm" {
		sw, err := p.parseSwarmBody()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(TokEnd); err != nil {
			return nil, err
		}
		return &ParseResult{Pswarm: sw}, nil
	}

	col, err := p.parseColonyBody(nameTok.Value)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(TokEnd); err != nil {
		return nil, err
	}
	return &ParseResult{Pcolony: col}, nil
}

func (p *Parser) peek() Token {
	return p.tokens[p.pos]
}

func (p *Parser) advance() Token {
	t := p.tokens[p.pos]
	if p.pos < len(p.tokens)-1 {
		p.pos++
	}
	return t
}

func (p *Parser) expect(kind TokenKind) (Token, error) {
	t := p.peek()
	if t.Kind != kind {
		return t, &ParseError{Got: t, Expected: kind.String()}
	}
	return p.advance(), nil
}

// parseIDListUntil consumes ID tokens (with optional COMMA
// separators) up to but not including the next token of kind closer.
// closer is documentation of the caller's intent rather than a value
// this method itself checks against.
func (p *Parser) parseIDListUntil(closer TokenKind) []string {
	var out []string
	for p.peek().Kind == TokID {
		out = append(out, p.advance().Value)
		if p.peek().Kind == TokComma {
			p.advance()
		}
	}
	return out
}

// parseParenObjectList parses '(' id_list ')'.
func (p *Parser) parseParenObjectList() ([]string, error) {
	if _, err := p.expect(TokLBrace); err != nil {
		return nil, err
	}
	items := p.parseIDListUntil(TokRBrace)
	if _, err := p.expect(TokRBrace); err != nil {
		return nil, err
	}
	return items, nil
}

// parseOpKind maps an operator token to a rule.Kind.
func (p *Parser) parseOpKind() (rule.Kind, error) {
	t := p.peek()
	switch t.Kind {
	case TokEvolution:
		p.advance()
		return rule.Evolution, nil
	case TokCommunication:
		p.advance()
		return rule.Communication, nil
	case TokExteroceptive:
		p.advance()
		return rule.Exteroceptive, nil
	case TokInExteroceptive:
		p.advance()
		return rule.InExteroceptive, nil
	case TokOutExteroceptive:
		p.advance()
		return rule.OutExteroceptive, nil
	default:
		return 0, &ParseError{Got: t, Expected: "a rule operator (->, <->, <=>, <I=>, <=O>)"}
	}
}

// parseRule parses `ID op ID [ '/' ID op ID ]`. Each branch may be
// wrapped in parentheses, as in `(a <-> b) / (a -> c)`.
func (p *Parser) parseRule() (rule.Rule, error) {
	paren := p.peek().Kind == TokLBrace
	if paren {
		p.advance()
	}
	lhs, err := p.expect(TokID)
	if err != nil {
		return rule.Rule{}, err
	}
	kind, err := p.parseOpKind()
	if err != nil {
		return rule.Rule{}, err
	}
	rhs, err := p.expect(TokID)
	if err != nil {
		return rule.Rule{}, err
	}
	if paren {
		if _, err := p.expect(TokRBrace); err != nil {
			return rule.Rule{}, err
		}
	}

	r := rule.Rule{MainKind: kind, Kind: kind, Lhs: lhs.Value, Rhs: rhs.Value}

	if p.peek().Kind != TokCheckSign {
		return r, nil
	}
	p.advance() // consume '/'

	paren = p.peek().Kind == TokLBrace
	if paren {
		p.advance()
	}
	altLhs, err := p.expect(TokID)
	if err != nil {
		return rule.Rule{}, err
	}
	altKind, err := p.parseOpKind()
	if err != nil {
		return rule.Rule{}, err
	}
	altRhs, err := p.expect(TokID)
	if err != nil {
		return rule.Rule{}, err
	}
	if paren {
		if _, err := p.expect(TokRBrace); err != nil {
			return rule.Rule{}, err
		}
	}

	r.MainKind = rule.Conditional
	r.AltKind = altKind
	r.AltLhs = altLhs.Value
	r.AltRhs = altRhs.Value
	return r, nil
}

// parseProgram parses `'<' rule { ',' rule } '>'`.
func (p *Parser) parseProgram() (rule.Program, error) {
	if _, err := p.expect(TokSmaller); err != nil {
		return nil, err
	}
	var prog rule.Program
	r, err := p.parseRule()
	if err != nil {
		return nil, err
	}
	prog = append(prog, r)
	for p.peek().Kind == TokComma {
		p.advance()
		r, err := p.parseRule()
		if err != nil {
			return nil, err
		}
		prog = append(prog, r)
	}
	if _, err := p.expect(TokLarger); err != nil {
		return nil, err
	}
	return prog, nil
}

// parseAgentBody parses `'(' '{' id_list '}' { program } ')'`.
func (p *Parser) parseAgentBody(name string) (*colony.Agent, error) {
	if _, err := p.expect(TokLBrace); err != nil {
		return nil, err
	}
	if _, err := p.expect(TokLCurlyBrace); err != nil {
		return nil, err
	}
	objItems := p.parseIDListUntil(TokRCurlyBrace)
	if _, err := p.expect(TokRCurlyBrace); err != nil {
		return nil, err
	}

	var programs []rule.Program
	for p.peek().Kind == TokSmaller {
		prog, err := p.parseProgram()
		if err != nil {
			return nil, err
		}
		programs = append(programs, prog)
		for p.peek().Kind == TokComma {
			p.advance()
		}
	}

	if _, err := p.expect(TokRBrace); err != nil {
		return nil, err
	}
	return &colony.Agent{Name: name, Obj: multiset.FromCounts(objItems), Programs: programs}, nil
}

func containsStr(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}

// parseColonyBody parses the field sequence inside a Pcolony
// assignment's parentheses: A, e, f, n, env, B, then one assignment
// per name declared in B.
func (p *Parser) parseColonyBody(name string) (*colony.Pcolony, error) {
	if _, err := p.expect(TokLBrace); err != nil {
		return nil, err
	}

	c := &colony.Pcolony{
		Name:     name,
		Alphabet: make(map[string]struct{}),
		Agents:   make(map[string]*colony.Agent),
	}
	var agentNames []string

	for p.peek().Kind != TokRBrace {
		fieldTok, err := p.expect(TokID)
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(TokAssign); err != nil {
			return nil, err
		}

		switch fieldTok.Value {
		case "A":
			items, err := p.parseParenObjectList()
			if err != nil {
				return nil, err
			}
			for _, o := range items {
				c.Alphabet[o] = struct{}{}
			}

		case "e":
			v, err := p.expect(TokID)
			if err != nil {
				return nil, err
			}
			c.E = v.Value

		case "f":
			v, err := p.expect(TokID)
			if err != nil {
				return nil, err
			}
			c.F = v.Value

		case "n":
			v, err := p.expect(TokNumber)
			if err != nil {
				return nil, err
			}
			n, convErr := strconv.Atoi(v.Value)
			if convErr != nil {
				return nil, &ParseError{Got: v, Expected: "a valid integer for n"}
			}
			c.N = n

		case "env":
			items, err := p.parseParenObjectList()
			if err != nil {
				return nil, err
			}
			if !containsStr(items, c.E) {
				items = append(items, c.E)
			}
			c.Env = multiset.FromCounts(items)

		case "B":
			items, err := p.parseParenObjectList()
			if err != nil {
				return nil, err
			}
			agentNames = items
			c.AgentNames = agentNames

		default:
			if !containsStr(agentNames, fieldTok.Value) {
				return nil, &UnknownAgentError{Colony: name, Name: fieldTok.Value}
			}
			ag, err := p.parseAgentBody(fieldTok.Value)
			if err != nil {
				return nil, err
			}
			c.Agents[fieldTok.Value] = ag
		}

		if _, err := p.expect(TokEnd); err != nil {
			return nil, err
		}
	}

	if _, err := p.expect(TokRBrace); err != nil {
		return nil, err
	}
	return c, nil
}

// parseSwarmBody parses the field sequence inside a pswarm
// assignment's parentheses: global_env, in_global_env,
// out_global_env, C, then one assignment per name declared in C.
func (p *Parser) parseSwarmBody() (*swarm.Pswarm, error) {
	if _, err := p.expect(TokLBrace); err != nil {
		return nil, err
	}

	globalEnv := multiset.New()
	inGlobalEnv := multiset.New()
	outGlobalEnv := multiset.New()
	colonies := make(map[string]*colony.Pcolony)
	var colonyNames []string
	const elementary = "e" // a swarm has no single colony's declared e; the global envs use the conventional elementary symbol

	for p.peek().Kind != TokRBrace {
		fieldTok, err := p.expect(TokID)
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(TokAssign); err != nil {
			return nil, err
		}

		switch fieldTok.Value {
		case "global_env":
			items, err := p.parseParenObjectList()
			if err != nil {
				return nil, err
			}
			if !containsStr(items, elementary) {
				items = append(items, elementary)
			}
			globalEnv = multiset.FromCounts(items)

		case "in_global_env":
			items, err := p.parseParenObjectList()
			if err != nil {
				return nil, err
			}
			if !containsStr(items, elementary) {
				items = append(items, elementary)
			}
			inGlobalEnv = multiset.FromCounts(items)

		case "out_global_env":
			items, err := p.parseParenObjectList()
			if err != nil {
				return nil, err
			}
			if !containsStr(items, elementary) {
				items = append(items, elementary)
			}
			outGlobalEnv = multiset.FromCounts(items)

		case "C":
			items, err := p.parseParenObjectList()
			if err != nil {
				return nil, err
			}
			colonyNames = items

		default:
			if !containsStr(colonyNames, fieldTok.Value) {
				return nil, &UnknownColonyError{Name: fieldTok.Value}
			}
			col, err := p.parseColonyBody(fieldTok.Value)
			if err != nil {
				return nil, err
			}
			colonies[fieldTok.Value] = col
		}

		if _, err := p.expect(TokEnd); err != nil {
			return nil, err
		}
	}

	if _, err := p.expect(TokRBrace); err != nil {
		return nil, err
	}
	return swarm.NewPswarm(globalEnv, inGlobalEnv, outGlobalEnv, colonyNames, colonies), nil
}
