package schema

import (
	"fmt"
	"strings"
)

// PrecisionPolicy controls how a type renders its size suffix.
type PrecisionPolicy int

const (
	// PrecisionNone renders the bare type code.
	PrecisionNone PrecisionPolicy = iota
	// PrecisionOnly renders code(p).
	PrecisionOnly
	// PrecisionAndScale renders code(p,s).
	PrecisionAndScale
)

// MaxLengthSentinel is the precision value that means "maximum length" on
// types that support it, rendered as (max).
const MaxLengthSentinel = -1

type typeSpec struct {
	Code             string
	Policy           PrecisionPolicy
	DefaultPrecision int
	DefaultScale     int
	SupportsMax      bool
}

// AbstractType is one entry of the engine-neutral field type vocabulary.
// EngineCode names its corresponding engine type; the cross-reference is
// resolved through the engine lookup table at call time.
type AbstractType struct {
	typeSpec
	EngineCode string
}

// EngineType is one entry of the SQL engine type vocabulary. AbstractCode
// names its canonical abstract type; synonym types (numeric, money, ...)
// collapse onto the same abstract entry as their canonical form.
type EngineType struct {
	typeSpec
	AbstractCode string
	WideText     bool
	Currency     bool
}

// Abstract type codes.
const (
	TypeBoolean       = "boolean"
	TypeASCIIChar     = "asciichar"
	TypeASCIIString   = "asciistring"
	TypeUnicodeChar   = "unicodechar"
	TypeUnicodeString = "unicodestring"
	TypeInt32         = "int32"
	TypeInt64         = "int64"
	TypeDecimal       = "decimal"
	TypeFloat         = "float"
	TypeDateTime      = "datetime"
	TypeGUID          = "guid"
)

// The two lookup tables are populated once at package init and read-only
// afterwards, so concurrent lookups need no coordination.
var (
	abstractTypes = map[string]AbstractType{}
	engineTypes   = map[string]EngineType{}
)

func registerAbstract(t AbstractType) {
	abstractTypes[t.Code] = t
}

func registerEngine(t EngineType) {
	engineTypes[t.Code] = t
}

func init() {
	registerAbstract(AbstractType{typeSpec{TypeBoolean, PrecisionNone, 0, 0, false}, "bit"})
	registerAbstract(AbstractType{typeSpec{TypeASCIIChar, PrecisionOnly, 1, 0, false}, "char"})
	registerAbstract(AbstractType{typeSpec{TypeASCIIString, PrecisionOnly, 255, 0, true}, "varchar"})
	registerAbstract(AbstractType{typeSpec{TypeUnicodeChar, PrecisionOnly, 1, 0, false}, "nchar"})
	registerAbstract(AbstractType{typeSpec{TypeUnicodeString, PrecisionOnly, 255, 0, true}, "nvarchar"})
	registerAbstract(AbstractType{typeSpec{TypeInt32, PrecisionNone, 0, 0, false}, "int"})
	registerAbstract(AbstractType{typeSpec{TypeInt64, PrecisionNone, 0, 0, false}, "bigint"})
	registerAbstract(AbstractType{typeSpec{TypeDecimal, PrecisionAndScale, 18, 0, false}, "decimal"})
	registerAbstract(AbstractType{typeSpec{TypeFloat, PrecisionNone, 0, 0, false}, "float"})
	registerAbstract(AbstractType{typeSpec{TypeDateTime, PrecisionNone, 0, 0, false}, "datetime"})
	registerAbstract(AbstractType{typeSpec{TypeGUID, PrecisionNone, 0, 0, false}, "uniqueidentifier"})

	registerEngine(EngineType{typeSpec{"bit", PrecisionNone, 0, 0, false}, TypeBoolean, false, false})
	registerEngine(EngineType{typeSpec{"char", PrecisionOnly, 1, 0, false}, TypeASCIIChar, false, false})
	registerEngine(EngineType{typeSpec{"varchar", PrecisionOnly, 255, 0, true}, TypeASCIIString, false, false})
	registerEngine(EngineType{typeSpec{"text", PrecisionNone, 0, 0, false}, TypeASCIIString, true, false})
	registerEngine(EngineType{typeSpec{"nchar", PrecisionOnly, 1, 0, false}, TypeUnicodeChar, false, false})
	registerEngine(EngineType{typeSpec{"nvarchar", PrecisionOnly, 255, 0, true}, TypeUnicodeString, false, false})
	registerEngine(EngineType{typeSpec{"ntext", PrecisionNone, 0, 0, false}, TypeUnicodeString, true, false})
	registerEngine(EngineType{typeSpec{"int", PrecisionNone, 0, 0, false}, TypeInt32, false, false})
	registerEngine(EngineType{typeSpec{"bigint", PrecisionNone, 0, 0, false}, TypeInt64, false, false})
	registerEngine(EngineType{typeSpec{"decimal", PrecisionAndScale, 18, 0, false}, TypeDecimal, false, false})
	registerEngine(EngineType{typeSpec{"numeric", PrecisionAndScale, 18, 0, false}, TypeDecimal, false, false})
	registerEngine(EngineType{typeSpec{"float", PrecisionNone, 0, 0, false}, TypeFloat, false, false})
	registerEngine(EngineType{typeSpec{"money", PrecisionAndScale, 19, 4, false}, TypeDecimal, false, true})
	registerEngine(EngineType{typeSpec{"smallmoney", PrecisionAndScale, 10, 4, false}, TypeDecimal, false, true})
	registerEngine(EngineType{typeSpec{"datetime", PrecisionNone, 0, 0, false}, TypeDateTime, false, false})
	registerEngine(EngineType{typeSpec{"uniqueidentifier", PrecisionNone, 0, 0, false}, TypeGUID, false, false})
}

// AbstractTypeByCode looks up an abstract type by its code string.
func AbstractTypeByCode(code string) (AbstractType, bool) {
	t, ok := abstractTypes[strings.ToLower(code)]
	return t, ok
}

// EngineTypeByCode looks up an engine type by its code string.
func EngineTypeByCode(code string) (EngineType, bool) {
	t, ok := engineTypes[strings.ToLower(code)]
	return t, ok
}

// EngineTypeForAbstract resolves an abstract type to its engine counterpart.
func EngineTypeForAbstract(t AbstractType) (EngineType, bool) {
	return EngineTypeByCode(t.EngineCode)
}

// AbstractTypeForEngine resolves an engine type to its canonical abstract
// type. Synonyms collapse here: numeric, money and smallmoney all resolve to
// the decimal family.
func AbstractTypeForEngine(t EngineType) (AbstractType, bool) {
	return AbstractTypeByCode(t.AbstractCode)
}

// canonicalEngineCode is the engine code a synonym type renders under:
// the engine type of its canonical abstract type (text -> varchar,
// money -> decimal). Falls back to the type's own code if either hop of the
// cross-reference is missing, which cannot happen for registered entries.
func canonicalEngineCode(t EngineType) string {
	at, ok := AbstractTypeByCode(t.AbstractCode)
	if !ok {
		return t.Code
	}
	et, ok := EngineTypeByCode(at.EngineCode)
	if !ok {
		return t.Code
	}
	return et.Code
}

// RenderEngineType produces the canonical type string for a field declared
// with the given engine type. Special cases apply in order: legacy wide-text
// types render as their canonical code with (max), currency types render
// with their fixed precision/scale regardless of the field's stored values,
// the max-length sentinel renders as (max), and otherwise the precision
// policy decides the suffix using field values or type defaults.
func RenderEngineType(f FieldModel, t EngineType) string {
	if t.WideText {
		return canonicalEngineCode(t) + "(max)"
	}
	if t.Currency {
		return fmt.Sprintf("%s(%d,%d)", canonicalEngineCode(t), t.DefaultPrecision, t.DefaultScale)
	}
	return renderSpec(f, t.typeSpec)
}

// RenderAbstractType produces the canonical type string in the abstract
// vocabulary, using the same sentinel and precision-policy rules.
func RenderAbstractType(f FieldModel, t AbstractType) string {
	return renderSpec(f, t.typeSpec)
}

// RenderUnknownType is the fallback for type codes the registry does not
// know. It renders from the field's own stored precision and scale only,
// never consulting registry defaults.
func RenderUnknownType(f FieldModel) string {
	switch {
	case f.Precision != nil && *f.Precision == MaxLengthSentinel:
		return fmt.Sprintf("%s(max)", f.Type)
	case f.Precision != nil && f.Scale != nil:
		return fmt.Sprintf("%s(%d,%d)", f.Type, *f.Precision, *f.Scale)
	case f.Precision != nil:
		return fmt.Sprintf("%s(%d)", f.Type, *f.Precision)
	default:
		return f.Type
	}
}

// RenderFieldType resolves the field's raw type code against the registry
// (abstract vocabulary first, then engine vocabulary) and renders it.
// Unknown codes degrade to RenderUnknownType rather than failing.
func RenderFieldType(f FieldModel) string {
	if at, ok := AbstractTypeByCode(f.Type); ok {
		if et, ok := EngineTypeForAbstract(at); ok {
			return RenderEngineType(f, et)
		}
	}
	if et, ok := EngineTypeByCode(f.Type); ok {
		return RenderEngineType(f, et)
	}
	return RenderUnknownType(f)
}

func renderSpec(f FieldModel, s typeSpec) string {
	if s.SupportsMax && f.Precision != nil && *f.Precision == MaxLengthSentinel {
		return s.Code + "(max)"
	}
	switch s.Policy {
	case PrecisionOnly:
		p := s.DefaultPrecision
		if f.Precision != nil {
			p = *f.Precision
		}
		return fmt.Sprintf("%s(%d)", s.Code, p)
	case PrecisionAndScale:
		p, sc := s.DefaultPrecision, s.DefaultScale
		if f.Precision != nil {
			p = *f.Precision
		}
		if f.Scale != nil {
			sc = *f.Scale
		}
		return fmt.Sprintf("%s(%d,%d)", s.Code, p, sc)
	default:
		return s.Code
	}
}
