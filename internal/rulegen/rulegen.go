// Package rulegen emits a C header (and matching lookup-table source)
// enumerating the rule.Kind taxonomy, for consumption by an external
// native P colony simulator. It is a non-semantic collaborator: it
// reads rule.Kind constants and writes text, and is never called by
// colony, swarm, or simrun.
package rulegen

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/andrei91ro/pcolsim/internal/rule"
)

// nonConditionalKinds lists every basic rule kind in declaration
// order, excluding rule.Conditional, which is a pairing of two of
// these rather than a kind of its own.
var nonConditionalKinds = []rule.Kind{
	rule.Evolution,
	rule.Communication,
	rule.Exteroceptive,
	rule.InExteroceptive,
	rule.OutExteroceptive,
}

var kindUpperName = map[rule.Kind]string{
	rule.Evolution:       "EVOLUTION",
	rule.Communication:   "COMMUNICATION",
	rule.Exteroceptive:   "EXTEROCEPTIVE",
	rule.InExteroceptive: "IN_EXTEROCEPTIVE",
	rule.OutExteroceptive: "OUT_EXTEROCEPTIVE",
}

var kindDisplayName = map[rule.Kind]string{
	rule.Evolution:       "evolution",
	rule.Communication:   "communication",
	rule.Exteroceptive:   "exteroceptive",
	rule.InExteroceptive: "in-exteroceptive",
	rule.OutExteroceptive: "out-exteroceptive",
}

// Generate writes basePath+".h" and basePath+".c". now is stamped into
// the header's generation comment; callers pass the real wall-clock
// time since this package takes no direct time dependency.
func Generate(basePath string, now time.Time) error {
	header, ruleNamesString, lookup1, lookup2 := buildHeader(now)
	if err := os.WriteFile(basePath+".h", []byte(header), 0o644); err != nil {
		return fmt.Errorf("rulegen: writing header: %w", err)
	}

	source := buildSource(basePath, ruleNamesString, lookup1, lookup2)
	if err := os.WriteFile(basePath+".c", []byte(source), 0o644); err != nil {
		return fmt.Errorf("rulegen: writing source: %w", err)
	}
	return nil
}

func buildHeader(now time.Time) (header, ruleNamesString, lookup1, lookup2 string) {
	var b strings.Builder
	fmt.Fprintf(&b, `// vim:filetype=c
/**
 * @file rules.h
 * @brief P colony simulator rule types
 * This header enumerates every rule kind accepted by the simulator.
 * Auto-generated by pcolsim --ruleheader on %s
 */
#ifndef RULES_H
#define RULES_H

#include <stdint.h>
typedef enum _rule_type {
    // non-conditional (single rules)
    RULE_TYPE_NONE = 0,`, now.Format("02 Jan 2006 at 15:04"))

	var names strings.Builder
	for _, k := range nonConditionalKinds {
		fmt.Fprintf(&b, "\n    RULE_TYPE_%s,", kindUpperName[k])
		fmt.Fprintf(&names, "[RULE_TYPE_%s] = \"%s\", ", kindUpperName[k], kindDisplayName[k])
	}

	var l1, l2 strings.Builder
	b.WriteString("\n    // conditional (pair of rules)")
	for _, k1 := range nonConditionalKinds {
		for _, k2 := range nonConditionalKinds {
			fmt.Fprintf(&l1, "RULE_TYPE_%s, ", kindUpperName[k1])
			fmt.Fprintf(&l2, "RULE_TYPE_%s, ", kindUpperName[k2])
			if k1 == rule.Evolution && k2 == rule.Evolution {
				fmt.Fprintf(&b, "\n    RULE_TYPE_CONDITIONAL_%s_%s = 10,", kindUpperName[k1], kindUpperName[k2])
			} else {
				fmt.Fprintf(&b, "\n    RULE_TYPE_CONDITIONAL_%s_%s,", kindUpperName[k1], kindUpperName[k2])
			}
		}
	}
	b.WriteString("\n} rule_type_t;")

	b.WriteString("\n\n// the tables are generated according to the order of rule_type_t")
	b.WriteString("\nextern rule_type_t lookupFirst[];")
	b.WriteString("\nextern rule_type_t lookupSecond[];")
	b.WriteString("\n\n#ifdef PCOL_SIM\nextern char* ruleNames[];\n#endif")
	b.WriteString("\n\n#endif\n")

	return b.String(), names.String(), l1.String(), l2.String()
}

func buildSource(basePath, ruleNamesString, lookup1, lookup2 string) string {
	headerName := basePath
	if idx := strings.LastIndexByte(basePath, '/'); idx >= 0 {
		headerName = basePath[idx+1:]
	}
	var b strings.Builder
	fmt.Fprintf(&b, "#include \"%s.h\"\n", headerName)
	fmt.Fprintf(&b, "rule_type_t lookupFirst[] = {%s};\n", lookup1)
	fmt.Fprintf(&b, "rule_type_t lookupSecond[] = {%s};\n", lookup2)
	fmt.Fprintf(&b, "\n#ifdef PCOL_SIM\nchar* ruleNames[] = {%s};\n#endif\n", ruleNamesString)
	return b.String()
}
