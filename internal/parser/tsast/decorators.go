package tsast

import (
	sitter "github.com/smacker/go-tree-sitter"

	"github.com/griffnb/ts-swag/internal/domain"
)

// ParseDecorator converts a decorator node into its name, raw argument
// texts, and the key/value pairs of a leading object-literal argument.
func ParseDecorator(node *sitter.Node, src []byte) domain.DecoratorCall {
	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(i)
		if child == nil {
			continue
		}
		switch child.Type() {
		case "identifier", "member_expression":
			return domain.DecoratorCall{Name: Text(child, src)}
		case "call_expression":
			return parseDecoratorCall(child, src)
		}
	}
	return domain.DecoratorCall{}
}

func parseDecoratorCall(call *sitter.Node, src []byte) domain.DecoratorCall {
	dec := domain.DecoratorCall{
		Name: Text(call.ChildByFieldName("function"), src),
	}

	args := call.ChildByFieldName("arguments")
	if args == nil {
		return dec
	}

	for i := 0; i < int(args.NamedChildCount()); i++ {
		arg := args.NamedChild(i)
		if arg == nil || arg.Type() == "comment" {
			continue
		}
		dec.Args = append(dec.Args, Text(arg, src))
		if arg.Type() == "object" && dec.Props == nil {
			dec.Props = objectProps(arg, src)
		}
	}

	return dec
}

// objectProps flattens an object literal's top-level pairs into raw
// key → value text. String values are unquoted.
func objectProps(obj *sitter.Node, src []byte) map[string]string {
	props := make(map[string]string)

	for i := 0; i < int(obj.NamedChildCount()); i++ {
		pair := obj.NamedChild(i)
		if pair == nil || pair.Type() != "pair" {
			continue
		}

		key := pair.ChildByFieldName("key")
		value := pair.ChildByFieldName("value")
		if key == nil || value == nil {
			continue
		}

		var keyText string
		switch key.Type() {
		case "property_identifier", "identifier", "number":
			keyText = Text(key, src)
		case "string":
			keyText = StringContent(key, src)
		default:
			continue
		}

		if value.Type() == "string" {
			props[keyText] = StringContent(value, src)
		} else {
			props[keyText] = Text(value, src)
		}
	}

	return props
}

// MemberDecorators collects the decorators of a class member. Depending
// on the grammar version they appear either as children of the member
// node or as preceding siblings inside the class body, so both are
// scanned; the backward scan stops at the previous member boundary.
func MemberDecorators(member *sitter.Node, src []byte) []domain.DecoratorCall {
	var decorators []domain.DecoratorCall

	for i := 0; i < int(member.ChildCount()); i++ {
		child := member.Child(i)
		if child != nil && child.Type() == "decorator" {
			decorators = append(decorators, ParseDecorator(child, src))
		}
	}

	for prev := member.PrevSibling(); prev != nil; prev = prev.PrevSibling() {
		if prev.Type() == "comment" {
			continue
		}
		if prev.Type() != "decorator" {
			break
		}
		// preceding siblings are in reverse source order
		decorators = append([]domain.DecoratorCall{ParseDecorator(prev, src)}, decorators...)
	}

	return decorators
}

// DecoratorStart returns the start byte of the earliest decorator
// attached to a member, or the member's own start when undecorated.
// Used so comment lookup begins above the decorator stack.
func DecoratorStart(member *sitter.Node) int {
	start := int(member.StartByte())

	for prev := member.PrevSibling(); prev != nil; prev = prev.PrevSibling() {
		if prev.Type() == "comment" {
			continue
		}
		if prev.Type() != "decorator" {
			break
		}
		start = int(prev.StartByte())
	}

	return start
}
