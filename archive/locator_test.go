package archive

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/klauspost/compress/zip"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type entry struct {
	name string
	data []byte
}

// buildJar assembles an in-memory zip with the given members in order.
func buildJar(t *testing.T, entries ...entry) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, e := range entries {
		w, err := zw.Create(e.name)
		require.NoError(t, err)
		_, err = w.Write(e.data)
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

// memSink records matches and their contents without touching disk.
type memSink struct {
	got  []Match
	data map[string]string
}

func (s *memSink) Put(m Match, r io.Reader) error {
	b, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	if s.data == nil {
		s.data = map[string]string{}
	}
	s.data[m.RelativePath] = string(b)
	s.got = append(s.got, m)
	return nil
}

func TestLocatorArchive_FindsDeepestMatchAtEveryDepth(t *testing.T) {
	for depth := 1; depth <= 4; depth++ {
		t.Run(fmt.Sprintf("depth=%d", depth), func(t *testing.T) {
			inner := buildJar(t, entry{"com/foo/Bar.class", []byte("cafebabe")})
			var chain []string
			for i := depth; i >= 1; i-- {
				name := fmt.Sprintf("lib/level%d.jar", i)
				chain = append([]string{name}, chain...)
				inner = buildJar(t, entry{"META-INF/MANIFEST.MF", []byte("x")}, entry{name, inner})
			}

			sink := &memSink{}
			l := &Locator{Fragment: "Bar.class", Sink: sink, Log: zap.NewNop()}
			require.NoError(t, l.Archive(bytes.NewReader(inner), int64(len(inner)), "app.jar", "app.jar"))

			require.Len(t, sink.got, 1)
			m := sink.got[0]
			want := "app.jar/" + strings.Join(chain, "/")
			require.Equal(t, "app.jar", m.OuterContainer)
			require.Equal(t, want, m.ContainingPath)
			require.Equal(t, "Bar.class", m.BaseName)
			require.Equal(t, want+"/com/foo/Bar.class", m.RelativePath)
			require.Equal(t, "cafebabe", sink.data[m.RelativePath])
		})
	}
}

func TestLocatorArchive_NestedChainMatchesDescentOrder(t *testing.T) {
	deepest := buildJar(t, entry{"x/Bar.class", []byte("1")})
	middle := buildJar(t, entry{"BOOT-INF/lib/inner.jar", deepest})
	outer := buildJar(t, entry{"lib/middle.jar", middle})

	sink := &memSink{}
	l := &Locator{Fragment: "Bar.class", Sink: sink}
	require.NoError(t, l.Archive(bytes.NewReader(outer), int64(len(outer)), "app.jar", "target/app.jar"))

	require.Len(t, sink.got, 1)
	require.Equal(t, "target/app.jar/lib/middle.jar/BOOT-INF/lib/inner.jar", sink.got[0].ContainingPath)
	require.Equal(t, "target/app.jar/lib/middle.jar/BOOT-INF/lib/inner.jar/x/Bar.class", sink.got[0].RelativePath)
	require.Equal(t, "app.jar", sink.got[0].OuterContainer)
}

func TestLocatorArchive_CorruptNestedContainerAbortsAndKeepsManifest(t *testing.T) {
	outer := buildJar(t,
		entry{"com/foo/Bar.class", []byte("first")},
		entry{".jar", []byte("definitely not a zip")},
		entry{"com/foo/late/Bar.class", []byte("never reached")},
	)
	out := t.TempDir()
	sink := NewDirSink(out, zap.NewNop())
	l := &Locator{Fragment: "Bar.class", Sink: sink}

	err := l.Archive(bytes.NewReader(outer), int64(len(outer)), "app.jar", "app.jar")
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrContainerFormat))
	var cfe *ContainerFormatError
	require.True(t, errors.As(err, &cfe))
	require.Equal(t, "app.jar/.jar", cfe.Path)

	require.Len(t, sink.Manifest(), 1)
	require.Equal(t, "app.jar/com/foo/Bar.class", sink.Manifest()[0].RelativePath)
	b, err := os.ReadFile(filepath.Join(out, "Bar.class"))
	require.NoError(t, err)
	require.Equal(t, "first", string(b))
}

func TestLocatorArchive_FragmentIsSubstringOfBaseName(t *testing.T) {
	outer := buildJar(t,
		entry{"com/foo/Bar.class", []byte("a")},
		entry{"com/foo/BarBar.class", []byte("b")},
		entry{"com/foo/Baz.class", []byte("c")},
		entry{"com/foo/Bar.java", []byte("d")},
	)
	sink := &memSink{}
	l := &Locator{Fragment: "Bar.class", Sink: sink}
	require.NoError(t, l.Archive(bytes.NewReader(outer), int64(len(outer)), "app.jar", "app.jar"))

	var names []string
	for _, m := range sink.got {
		names = append(names, m.BaseName)
	}
	// BarBar.class sharing the suffix is accepted on purpose.
	require.Equal(t, []string{"Bar.class", "BarBar.class"}, names)
}

func TestLocatorArchive_NestedContainerNeverMatched(t *testing.T) {
	empty := buildJar(t)
	outer := buildJar(t,
		entry{"lib/Bar.class-tools.jar", empty},
		entry{"com/", nil},
	)
	sink := &memSink{}
	l := &Locator{Fragment: "Bar.class", Sink: sink}
	require.NoError(t, l.Archive(bytes.NewReader(outer), int64(len(outer)), "app.jar", "app.jar"))
	require.Empty(t, sink.got)
}

func TestLocatorArchive_TopLevelNotAZip(t *testing.T) {
	b := []byte("plain text")
	l := &Locator{Fragment: "Bar.class", Sink: &memSink{}}
	err := l.Archive(bytes.NewReader(b), int64(len(b)), "app.jar", "app.jar")
	require.ErrorIs(t, err, ErrContainerFormat)
}

func TestLocatorArchive_SinkErrorStopsWalk(t *testing.T) {
	outer := buildJar(t, entry{"A/Bar.class", []byte("a")}, entry{"B/Bar.class", []byte("b")})
	boom := errors.New("boom")
	calls := 0
	l := &Locator{Fragment: "Bar.class", Sink: sinkFunc(func(Match, io.Reader) error {
		calls++
		return boom
	})}
	err := l.Archive(bytes.NewReader(outer), int64(len(outer)), "app.jar", "app.jar")
	require.ErrorIs(t, err, boom)
	require.Equal(t, 1, calls)
}

type sinkFunc func(Match, io.Reader) error

func (f sinkFunc) Put(m Match, r io.Reader) error { return f(m, r) }
