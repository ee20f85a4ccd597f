package archive

import "io"

// ContainerSuffix is the member/file name suffix that marks a nested container.
const ContainerSuffix = ".jar"

// Match describes one located member. The serialized keys are shared with
// the match report printed by the CLI.
type Match struct {
	// OuterContainer is the base name of the top-level jar the walk started from.
	OuterContainer string `yaml:"parent_jar_file_name" json:"parent_jar_file_name"`
	// ContainingPath is the logical path of the jar that holds the member.
	ContainingPath string `yaml:"jar_file_name" json:"jar_file_name"`
	BaseName       string `yaml:"class_file_name" json:"class_file_name"`
	// RelativePath is ContainingPath joined with the member's full name.
	RelativePath    string `yaml:"class_file_path" json:"class_file_path"`
	JavaProcessList string `yaml:"java_process_list_str" json:"java_process_list_str"`
}

// Sink receives matches in discovery order together with the member bytes.
// Returning an error aborts the walk.
type Sink interface {
	Put(m Match, r io.Reader) error
}
