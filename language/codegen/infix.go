// File: codegen/infix.go
package codegen

import (
	"strings"
	"unicode"
)

// ConvertInfixStringToPrefix converts an infix expression over single
// character operands to prefix notation without building a tree. The input
// is reversed with parentheses swapped, converted to postfix by shunting-yard
// and the postfix output is reversed again.
func ConvertInfixStringToPrefix(expression string) string {
	stripped := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, expression)

	reversed := reverseSwappingParens([]rune(stripped))
	postfix := infixToPostfix(reversed)
	return string(reverse(postfix))
}

func precedence(op rune) int {
	switch op {
	case '+', '-':
		return 1
	case '*', '/':
		return 2
	case '^':
		return 3
	}
	return 0
}

func isInfixOperator(r rune) bool {
	return precedence(r) > 0
}

func rightAssociative(op rune) bool {
	return op == '^'
}

func reverseSwappingParens(in []rune) []rune {
	out := make([]rune, 0, len(in))
	for i := len(in) - 1; i >= 0; i-- {
		switch in[i] {
		case '(':
			out = append(out, ')')
		case ')':
			out = append(out, '(')
		default:
			out = append(out, in[i])
		}
	}
	return out
}

func reverse(in []rune) []rune {
	out := make([]rune, len(in))
	for i, r := range in {
		out[len(in)-1-i] = r
	}
	return out
}

// infixToPostfix is shunting-yard adapted for the reversed input: an operator
// only pops operators of strictly higher precedence, or of equal precedence
// when it is right associative itself
func infixToPostfix(in []rune) []rune {
	var stack, out []rune

	for _, r := range in {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			out = append(out, r)
		case r == '(':
			stack = append(stack, r)
		case r == ')':
			for len(stack) > 0 && stack[len(stack)-1] != '(' {
				out = append(out, stack[len(stack)-1])
				stack = stack[:len(stack)-1]
			}
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
			}
		case isInfixOperator(r):
			for len(stack) > 0 {
				top := stack[len(stack)-1]
				if top == '(' {
					break
				}
				if precedence(top) > precedence(r) || (precedence(top) == precedence(r) && rightAssociative(r)) {
					out = append(out, top)
					stack = stack[:len(stack)-1]
					continue
				}
				break
			}
			stack = append(stack, r)
		}
	}

	for len(stack) > 0 {
		out = append(out, stack[len(stack)-1])
		stack = stack[:len(stack)-1]
	}

	return out
}
