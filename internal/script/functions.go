package script

import (
	"encoding/base64"
	"fmt"
	"reflect"

	"github.com/vk/rester/internal/conf"
	"github.com/vk/rester/internal/op"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/function"
)

// operationType is the capsule type carrying operations through script
// expressions, so they can be named, listed and passed to combinators.
var operationType = cty.Capsule("operation", reflect.TypeOf((*op.Operation)(nil)).Elem())

// OperationVal wraps an operation as a script value.
func OperationVal(o op.Operation) cty.Value {
	return cty.CapsuleVal(operationType, &o)
}

// AsOperation converts an evaluated definition into an operation. Operation
// values unwrap to themselves; any other value becomes a constant, matching
// how plain definitions behave when run.
func AsOperation(v cty.Value) (op.Operation, error) {
	if v.Type().Equals(operationType) {
		return *(v.EncapsulatedValue().(*op.Operation)), nil
	}
	goVal, err := valueToGo(v)
	if err != nil {
		return nil, err
	}
	return op.NewConstant(goVal), nil
}

// Functions returns the builtin function table available to scripts. The
// resolver backs config() and exists(), so every configuration lookup made
// from a script observes the environment-over-file layering.
func Functions(resolver *conf.Resolver) map[string]function.Function {
	return map[string]function.Function{
		"config":       configFunc(resolver),
		"exists":       existsFunc(resolver),
		"base64encode": base64encodeFunc,
		"get":          requestFunc("get", op.MethodGet, false),
		"delete":       requestFunc("delete", op.MethodDelete, false),
		"post":         requestFunc("post", op.MethodPost, true),
		"put":          requestFunc("put", op.MethodPut, true),
		"request":      genericRequestFunc,
		"bearer":       bearerFunc,
		"sequence":     sequenceFunc,
	}
}

func configFunc(resolver *conf.Resolver) function.Function {
	return function.New(&function.Spec{
		Params: []function.Parameter{{Name: "key", Type: cty.String}},
		Type: func(args []cty.Value) (cty.Type, error) {
			if !args[0].IsKnown() {
				return cty.DynamicPseudoType, nil
			}
			v, err := resolver.Value(args[0].AsString())
			if err != nil {
				return cty.NilType, err
			}
			return v.Type(), nil
		},
		Impl: func(args []cty.Value, retType cty.Type) (cty.Value, error) {
			return resolver.Value(args[0].AsString())
		},
	})
}

func existsFunc(resolver *conf.Resolver) function.Function {
	return function.New(&function.Spec{
		Params: []function.Parameter{{Name: "key", Type: cty.String}},
		Type:   function.StaticReturnType(cty.Bool),
		Impl: func(args []cty.Value, retType cty.Type) (cty.Value, error) {
			return cty.BoolVal(resolver.Has(args[0].AsString())), nil
		},
	})
}

var base64encodeFunc = function.New(&function.Spec{
	Params: []function.Parameter{{Name: "str", Type: cty.String}},
	Type:   function.StaticReturnType(cty.String),
	Impl: func(args []cty.Value, retType cty.Type) (cty.Value, error) {
		return cty.StringVal(base64.StdEncoding.EncodeToString([]byte(args[0].AsString()))), nil
	},
})

// requestFunc builds the per-method request constructors. Methods that carry
// a payload take a second argument holding the request data object.
func requestFunc(name string, method op.Method, withBody bool) function.Function {
	params := []function.Parameter{{Name: "url", Type: cty.String}}
	if withBody {
		params = append(params, function.Parameter{Name: "data", Type: cty.DynamicPseudoType})
	}
	return function.New(&function.Spec{
		Params: params,
		Type:   function.StaticReturnType(operationType),
		Impl: func(args []cty.Value, retType cty.Type) (cty.Value, error) {
			var data map[string]any
			if withBody {
				var err error
				data, err = dataToGo(args[1])
				if err != nil {
					return cty.NilVal, fmt.Errorf("%s: %w", name, err)
				}
			}
			return OperationVal(op.NewRequest(args[0].AsString(), method, data)), nil
		},
	})
}

var genericRequestFunc = function.New(&function.Spec{
	Params: []function.Parameter{
		{Name: "method", Type: cty.String},
		{Name: "url", Type: cty.String},
	},
	VarParam: &function.Parameter{Name: "data", Type: cty.DynamicPseudoType},
	Type:     function.StaticReturnType(operationType),
	Impl: func(args []cty.Value, retType cty.Type) (cty.Value, error) {
		method := op.Method(args[0].AsString())
		switch method {
		case op.MethodGet, op.MethodPost, op.MethodPut, op.MethodDelete:
		default:
			return cty.NilVal, fmt.Errorf("request: unsupported method %q", args[0].AsString())
		}

		var data map[string]any
		if len(args) > 2 {
			var err error
			data, err = dataToGo(args[2])
			if err != nil {
				return cty.NilVal, fmt.Errorf("request: %w", err)
			}
		}
		return OperationVal(op.NewRequest(args[1].AsString(), method, data)), nil
	},
})

var bearerFunc = function.New(&function.Spec{
	Params: []function.Parameter{
		{Name: "auth", Type: operationType},
		{Name: "request", Type: operationType},
	},
	VarParam: &function.Parameter{Name: "prefix", Type: cty.String},
	Type:     function.StaticReturnType(operationType),
	Impl: func(args []cty.Value, retType cty.Type) (cty.Value, error) {
		auth, err := AsOperation(args[0])
		if err != nil {
			return cty.NilVal, err
		}
		request, err := AsOperation(args[1])
		if err != nil {
			return cty.NilVal, err
		}
		prefix := ""
		if len(args) > 2 {
			prefix = args[2].AsString()
		}
		return OperationVal(op.NewBearerAuth(auth, request, prefix)), nil
	},
})

var sequenceFunc = function.New(&function.Spec{
	Params: []function.Parameter{
		{Name: "operations", Type: cty.List(operationType)},
	},
	VarParam: &function.Parameter{Name: "base_url", Type: cty.String},
	Type:     function.StaticReturnType(operationType),
	Impl: func(args []cty.Value, retType cty.Type) (cty.Value, error) {
		var ops []op.Operation
		for it := args[0].ElementIterator(); it.Next(); {
			_, element := it.Element()
			operation, err := AsOperation(element)
			if err != nil {
				return cty.NilVal, err
			}
			ops = append(ops, operation)
		}

		baseURL := ""
		if len(args) > 1 {
			baseURL = args[1].AsString()
		}
		return OperationVal(op.NewSequence(ops, baseURL)), nil
	},
})
