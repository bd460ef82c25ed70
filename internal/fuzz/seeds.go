package fuzztests

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

const maxSeedBytes = 64 << 10

var snippetSeeds = []string{
	"",
	"x=1\n",
	"x = \"don't\"\n",
	"f(a, b,)\n",
	"def f(a:int=1, *args, **kw) -> None:\n    return a\n",
	"class C(Base, metaclass=M):\n    '''doc'''\n    x: int = 0\n",
	"if (n:=len(a)) > 10:\n    pass\nelif a:\n    pass\nelse:\n    pass\n",
	"for i, v in enumerate(xs):\n    continue\n",
	"while True:\n    break\n",
	"try:\n    pass\nexcept* (A, B) as e:\n    raise X from e\nfinally:\n    pass\n",
	"with open(p) as f, open(q) as g:\n    pass\n",
	"match cmd:\n    case [x, *rest] if x:\n        pass\n    case {'k': v}:\n        pass\n",
	"async def f():\n    await g()\n    async for x in y:\n        pass\n",
	"lambda x, *, y=1: x + y\n",
	"x = [i ** 2 for i in range(10) if i % 2]\n",
	"y = a[1:2, ::3]\n",
	"s = f'{x!r:>10}' + r'\\d'\n",
	"x = 0XFF + 1E5 + 10J\n",
	"x = [1,  # one\n     2]\n",
	"ls -la\n",
	"echo $HOME | grep x\n",
	"a = 1; b = 2;\n",
	"global a, b\nnonlocal c\ndel x[0], y\n",
	"from . import (a,\n    b)\nimport os.path as p\n",
	"x = yield\ny = not -a ** -b\n",
}

func addCorpusSeeds(f *testing.F) {
	for _, s := range snippetSeeds {
		f.Add([]byte(s))
	}
	addTestdataSeeds(f)
}

func addTestdataSeeds(f *testing.F) {
	root := filepath.Join("..", "..", "testdata")
	if _, err := os.Stat(root); err != nil {
		return
	}
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil || d.IsDir() {
			return nil
		}
		switch filepath.Ext(path) {
		case ".py", ".pyi", ".xsh":
		default:
			return nil
		}
		// #nosec G304 -- path comes from repository testdata walk
		src, err := os.ReadFile(path)
		if err != nil {
			return nil
		}
		f.Add(clampSeed(src))
		return nil
	})
}

func clampSeed(src []byte) []byte {
	if len(src) <= maxSeedBytes {
		return append([]byte(nil), src...)
	}
	return append([]byte(nil), src[:maxSeedBytes]...)
}
