package scan

import (
	"fmt"
	"os"
	"strings"

	ignore "github.com/sabhiram/go-gitignore"
	"gopkg.in/yaml.v3"
)

// defaultIgnorePatterns are gitignore-style lines matched against both the
// entry name and the root-relative path.
var defaultIgnorePatterns = []string{
	".*",
	"node_modules/",
	"bower_components/",
	"vendor/",
	"dist/",
	"build/",
	"out/",
	"target/",
	"coverage/",
	"__pycache__/",
	".idea/",
	".vscode/",
	".DS_Store",
	"Thumbs.db",
	"*.log",
	"package-lock.json",
	"yarn.lock",
	"pnpm-lock.yaml",
	"Gemfile.lock",
	"poetry.lock",
	"Cargo.lock",
	"composer.lock",
	"*.png", "*.jpg", "*.jpeg", "*.gif", "*.ico", "*.svg",
	"*.pdf", "*.zip", "*.tar", "*.gz", "*.7z",
	"*.exe", "*.dll", "*.so", "*.dylib", "*.bin", "*.class", "*.pyc",
	"*.woff", "*.woff2", "*.ttf", "*.eot",
	"*.mp3", "*.mp4", "*.avi", "*.mov", "*.webm",
}

// defaultAllowExtensions is the relevance allow-list for documentation work.
var defaultAllowExtensions = []string{
	".js", ".jsx", ".ts", ".tsx", ".mjs",
	".py", ".java", ".go", ".rb", ".php",
	".c", ".cpp", ".h", ".hpp", ".cs",
	".swift", ".kt", ".rs", ".scala",
	".sh", ".bash",
	".html", ".css", ".scss",
	".json", ".yaml", ".yml", ".toml", ".xml",
	".md", ".txt", ".sql",
	".vue", ".svelte",
}

// defaultNameMarkers flag files as relevant by name regardless of extension.
var defaultNameMarkers = []string{"readme", "config", "package", "makefile"}

// Policy decides which entries a scan keeps and which files the relevance
// filter passes through.
type Policy struct {
	matcher     *ignore.GitIgnore
	allowExts   map[string]struct{}
	nameMarkers []string
}

// policyFile is the optional YAML override loaded from SCAN_POLICY_FILE.
// Listed values extend the compiled-in defaults.
type policyFile struct {
	IgnorePatterns  []string `yaml:"ignore_patterns"`
	AllowExtensions []string `yaml:"allow_extensions"`
	NameMarkers     []string `yaml:"name_markers"`
}

func newPolicy(ignorePatterns, allowExts, nameMarkers []string) *Policy {
	p := &Policy{
		matcher:     ignore.CompileIgnoreLines(ignorePatterns...),
		allowExts:   make(map[string]struct{}, len(allowExts)),
		nameMarkers: nameMarkers,
	}
	for _, ext := range allowExts {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		p.allowExts[ext] = struct{}{}
	}
	return p
}

// DefaultPolicy returns the compiled-in ignore and relevance rules.
func DefaultPolicy() *Policy {
	return newPolicy(defaultIgnorePatterns, defaultAllowExtensions, defaultNameMarkers)
}

// LoadPolicy builds a Policy from defaults extended by the YAML file at path.
// An empty path yields the defaults unchanged.
func LoadPolicy(path string) (*Policy, error) {
	if strings.TrimSpace(path) == "" {
		return DefaultPolicy(), nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("scan: read policy file: %w", err)
	}
	var pf policyFile
	if err := yaml.Unmarshal(b, &pf); err != nil {
		return nil, fmt.Errorf("scan: parse policy file: %w", err)
	}
	return newPolicy(
		append(append([]string{}, defaultIgnorePatterns...), pf.IgnorePatterns...),
		append(append([]string{}, defaultAllowExtensions...), pf.AllowExtensions...),
		append(append([]string{}, defaultNameMarkers...), pf.NameMarkers...),
	), nil
}

// Ignores reports whether an entry should be excluded from scans. Both the
// bare name and the relative path are checked so directory patterns apply at
// any depth. Directories are also matched with a trailing slash so that
// dir-only patterns like "vendor/" take effect.
func (p *Policy) Ignores(relPath, name string, isDir bool) bool {
	if p.matcher.MatchesPath(name) || p.matcher.MatchesPath(relPath) {
		return true
	}
	if isDir {
		return p.matcher.MatchesPath(name+"/") || p.matcher.MatchesPath(relPath+"/")
	}
	return false
}
