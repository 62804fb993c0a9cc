package lang

import (
	"github.com/smacker/go-tree-sitter/python"

	"github.com/bethropolis/quill/internal/lexer"
)

// Python is the Python 3 language definition.
var Python = &Language{
	Name: "Python",
	Grammar: lexer.Grammar{
		Name:       "Python",
		Chroma:     "python",
		TreeSitter: python.GetLanguage(),
	},
	Extensions:        []string{".py", ".pyw"},
	Keywords:          NewWordSet(pythonKeywords...),
	Builtins:          NewWordSet(pythonBuiltins...),
	Dunders:           NewWordSet(pythonDunders...),
	DefinitionKeyword: "def",
	ReceiverName:      "self",
}

// keyword.kwlist
var pythonKeywords = []string{
	"False", "None", "True", "and", "as", "assert", "async", "await",
	"break", "class", "continue", "def", "del", "elif", "else", "except",
	"finally", "for", "from", "global", "if", "import", "in", "is",
	"lambda", "nonlocal", "not", "or", "pass", "raise", "return", "try",
	"while", "with", "yield",
}

// dir(builtins)
var pythonBuiltins = []string{
	"ArithmeticError", "AssertionError", "AttributeError", "BaseException",
	"BaseExceptionGroup", "BlockingIOError", "BrokenPipeError", "BufferError",
	"BytesWarning", "ChildProcessError", "ConnectionAbortedError", "ConnectionError",
	"ConnectionRefusedError", "ConnectionResetError", "DeprecationWarning", "EOFError",
	"Ellipsis", "EncodingWarning", "EnvironmentError", "Exception", "ExceptionGroup",
	"False", "FileExistsError", "FileNotFoundError", "FloatingPointError", "FutureWarning",
	"GeneratorExit", "IOError", "ImportError", "ImportWarning", "IndentationError",
	"IndexError", "InterruptedError", "IsADirectoryError", "KeyError", "KeyboardInterrupt",
	"LookupError", "MemoryError", "ModuleNotFoundError", "NameError", "None",
	"NotADirectoryError", "NotImplemented", "NotImplementedError", "OSError",
	"OverflowError", "PendingDeprecationWarning", "PermissionError", "ProcessLookupError",
	"RecursionError", "ReferenceError", "ResourceWarning", "RuntimeError", "RuntimeWarning",
	"StopAsyncIteration", "StopIteration", "SyntaxError", "SyntaxWarning", "SystemError",
	"SystemExit", "TabError", "TimeoutError", "True", "TypeError", "UnboundLocalError",
	"UnicodeDecodeError", "UnicodeEncodeError", "UnicodeError", "UnicodeTranslateError",
	"UnicodeWarning", "UserWarning", "ValueError", "Warning", "ZeroDivisionError",
	"__build_class__", "__debug__", "__doc__", "__import__", "__loader__", "__name__",
	"__package__", "__spec__",
	"abs", "aiter", "all", "anext", "any", "ascii", "bin", "bool", "breakpoint",
	"bytearray", "bytes", "callable", "chr", "classmethod", "compile", "complex",
	"copyright", "credits", "delattr", "dict", "dir", "divmod", "enumerate", "eval",
	"exec", "exit", "filter", "float", "format", "frozenset", "getattr", "globals",
	"hasattr", "hash", "help", "hex", "id", "input", "int", "isinstance", "issubclass",
	"iter", "len", "license", "list", "locals", "map", "max", "memoryview", "min",
	"next", "object", "oct", "open", "ord", "pow", "print", "property", "quit", "range",
	"repr", "reversed", "round", "set", "setattr", "slice", "sorted", "staticmethod",
	"str", "sum", "super", "tuple", "type", "vars", "zip",
}

// Callable special methods of object, int, str, list, dict, float, set, tuple,
// bool, type, bytes, bytearray, complex, range, slice and memoryview.
var pythonDunders = []string{
	"__abs__", "__add__", "__alloc__", "__and__", "__bool__", "__buffer__",
	"__bytes__", "__call__", "__ceil__", "__class__", "__class_getitem__",
	"__complex__", "__contains__", "__delattr__", "__delitem__", "__dir__",
	"__divmod__", "__enter__", "__eq__", "__exit__", "__float__", "__floor__",
	"__floordiv__", "__format__", "__ge__", "__getattribute__", "__getformat__",
	"__getitem__", "__getnewargs__", "__getstate__", "__gt__", "__hash__",
	"__iadd__", "__iand__", "__imul__", "__index__", "__init__", "__init_subclass__",
	"__instancecheck__", "__int__", "__invert__", "__ior__", "__isub__", "__iter__",
	"__ixor__", "__le__", "__len__", "__lshift__", "__lt__", "__mod__", "__mul__",
	"__ne__", "__neg__", "__new__", "__or__", "__pos__", "__pow__", "__prepare__",
	"__radd__", "__rand__", "__rdivmod__", "__reduce__", "__reduce_ex__",
	"__release_buffer__", "__repr__", "__reversed__", "__rfloordiv__", "__rlshift__",
	"__rmod__", "__rmul__", "__ror__", "__round__", "__rpow__", "__rrshift__",
	"__rshift__", "__rsub__", "__rtruediv__", "__rxor__", "__setattr__",
	"__setitem__", "__sizeof__", "__str__", "__sub__", "__subclasscheck__",
	"__subclasses__", "__subclasshook__", "__truediv__", "__trunc__", "__xor__",
}
