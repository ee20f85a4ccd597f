package archive

import "go.uber.org/zap"

// Extract searches every jar under root for members whose base name contains
// fragment and copies them into outDir. The manifest is returned even when
// the walk fails part way, holding everything extracted before the failure.
func Extract(root, fragment, outDir string, log *zap.Logger) ([]Match, error) {
	sink := NewDirSink(outDir, log)
	l := &Locator{Fragment: fragment, Sink: sink, Log: log}
	err := l.Directory(root)
	return sink.Manifest(), err
}
