package parser

import (
	"archive/zip"
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf16"

	"github.com/richardlehane/mscfb"

	"github.com/ukaji3/bookaudit-go/pkg/bookaudit/models"
)

// ErrNoVBAProject indicates the workbook embeds no VBA project.
var ErrNoVBAProject = errors.New("no VBA project found")

// vbaProjectPart is the OOXML package part holding the VBA project.
const vbaProjectPart = "xl/vbaproject.bin"

// Compound-file header magic.
var cfbSignature = []byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1}

// dir stream record ids (MS-OVBA).
const (
	recProjectVersion    = 0x0009
	recModuleName        = 0x0019
	recModuleNameUnicode = 0x0047
	recModuleStreamName  = 0x001A
	recModuleStreamNameU = 0x0032
	recModuleOffset      = 0x0031
	recModuleTypeStd     = 0x0021
	recModuleTypeDoc     = 0x0022
)

// ExtractVBAProject enumerates VBA components of a workbook by parsing the
// embedded project storage directly, without a live application session.
// Works on OOXML packages (.xlsm) holding an xl/vbaProject.bin part and on
// legacy compound files (.xls). Returns ErrNoVBAProject when the workbook
// carries no macros.
func ExtractVBAProject(path string) ([]models.ModuleInfo, map[string]string, error) {
	raw, err := readProjectBin(path)
	if err != nil {
		return nil, nil, err
	}

	streams, err := readProjectStreams(bytes.NewReader(raw))
	if err != nil {
		return nil, nil, err
	}
	if streams.dir == nil {
		return nil, nil, ErrNoVBAProject
	}

	dirData, err := DecompressContainer(streams.dir)
	if err != nil {
		return nil, nil, fmt.Errorf("dir stream: %w", err)
	}
	dirModules, err := parseDirStream(dirData)
	if err != nil {
		return nil, nil, err
	}
	types := parseProjectTypes(streams.project)

	modules := make([]models.ModuleInfo, 0, len(dirModules))
	moduleCode := make(map[string]string, len(dirModules))
	for _, m := range dirModules {
		src, err := moduleSource(streams, m)
		if err != nil {
			return nil, nil, fmt.Errorf("module %s: %w", m.name, err)
		}

		typeCode := m.typeCode
		if t, ok := types[m.name]; ok {
			typeCode = int(t)
		}

		lines := countCodeLines(src)
		modules = append(modules, models.ModuleInfo{
			Name:      m.name,
			Type:      typeCode,
			CodeLines: lines,
		})
		if lines > 0 {
			moduleCode[m.name] = src
		} else {
			moduleCode[m.name] = models.EmptyModulePlaceholder
		}
	}

	return modules, moduleCode, nil
}

// readProjectBin returns the raw VBA project compound file for a workbook:
// the xl/vbaProject.bin part of an OOXML package, or the whole file for a
// legacy compound-file workbook.
func readProjectBin(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	magic := make([]byte, 8)
	if _, err := io.ReadFull(f, magic); err != nil {
		return nil, ErrNoVBAProject
	}

	if bytes.Equal(magic, cfbSignature) {
		if _, err := f.Seek(0, io.SeekStart); err != nil {
			return nil, err
		}
		return io.ReadAll(f)
	}

	if magic[0] != 'P' || magic[1] != 'K' {
		return nil, fmt.Errorf("%w: unrecognized workbook container", ErrNoVBAProject)
	}

	zr, err := zip.OpenReader(path)
	if err != nil {
		return nil, err
	}
	defer zr.Close()

	for _, part := range zr.File {
		if strings.EqualFold(part.Name, vbaProjectPart) {
			rc, err := part.Open()
			if err != nil {
				return nil, err
			}
			defer rc.Close()
			return io.ReadAll(rc)
		}
	}
	return nil, ErrNoVBAProject
}

// projectStreams holds the streams of interest from the project storage.
type projectStreams struct {
	// project is the plain-text PROJECT stream.
	project []byte
	// dir is the compressed dir stream of the VBA storage.
	dir []byte
	// modules maps lowercased stream name to module stream bytes.
	modules map[string][]byte
}

// readProjectStreams walks the compound file and collects the PROJECT
// stream, the VBA dir stream, and all module streams.
func readProjectStreams(ra io.ReaderAt) (*projectStreams, error) {
	doc, err := mscfb.New(ra)
	if err != nil {
		return nil, fmt.Errorf("open project storage: %w", err)
	}

	streams := &projectStreams{modules: make(map[string][]byte)}
	for entry, err := doc.Next(); err == nil; entry, err = doc.Next() {
		if entry.Size == 0 {
			continue
		}
		parent := ""
		if len(entry.Path) > 0 {
			parent = entry.Path[len(entry.Path)-1]
		}

		switch {
		case strings.EqualFold(entry.Name, "PROJECT") && !strings.EqualFold(parent, "VBA"):
			streams.project, err = readStream(entry)
		case strings.EqualFold(entry.Name, "dir") && strings.EqualFold(parent, "VBA"):
			streams.dir, err = readStream(entry)
		case strings.EqualFold(parent, "VBA"):
			var data []byte
			data, err = readStream(entry)
			streams.modules[strings.ToLower(entry.Name)] = data
		default:
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("read stream %s: %w", entry.Name, err)
		}
	}
	return streams, nil
}

func readStream(entry *mscfb.File) ([]byte, error) {
	buf := make([]byte, entry.Size)
	if _, err := io.ReadFull(entry, buf); err != nil {
		return nil, err
	}
	return buf, nil
}

// dirModule is a module description gathered from the dir stream.
type dirModule struct {
	name       string
	streamName string
	offset     uint32
	typeCode   int
}

// parseDirStream walks the decompressed dir stream records and collects the
// per-module name, stream name, and source text offset.
func parseDirStream(data []byte) ([]dirModule, error) {
	var mods []dirModule
	var cur *dirModule

	i := 0
	for i+6 <= len(data) {
		id := binary.LittleEndian.Uint16(data[i:])
		size := binary.LittleEndian.Uint32(data[i+2:])
		i += 6

		// PROJECTVERSION stores a fixed size field of 4 but carries 6
		// bytes of version data.
		if id == recProjectVersion && size == 4 {
			size = 6
		}
		if i+int(size) > len(data) {
			return nil, fmt.Errorf("%w: truncated dir record %#x", ErrInvalidContainer, id)
		}
		rec := data[i : i+int(size)]
		i += int(size)

		switch id {
		case recModuleName:
			mods = append(mods, dirModule{
				name:     decodeMBCS(rec),
				typeCode: int(models.TypeStdModule),
			})
			cur = &mods[len(mods)-1]
		case recModuleNameUnicode:
			if cur != nil {
				cur.name = decodeUTF16(rec)
			}
		case recModuleStreamName:
			if cur != nil {
				cur.streamName = decodeMBCS(rec)
			}
		case recModuleStreamNameU:
			if cur != nil {
				cur.streamName = decodeUTF16(rec)
			}
		case recModuleOffset:
			if cur != nil && len(rec) >= 4 {
				cur.offset = binary.LittleEndian.Uint32(rec)
			}
		case recModuleTypeStd:
			if cur != nil {
				cur.typeCode = int(models.TypeStdModule)
			}
		case recModuleTypeDoc:
			if cur != nil {
				cur.typeCode = int(models.TypeDocument)
			}
		}
	}

	return mods, nil
}

// parseProjectTypes reads component types from the PROJECT stream's
// properties section. Keys: Module (standard), Class (class module),
// BaseClass (form), Document (code-behind, value carries a /&H suffix).
func parseProjectTypes(project []byte) map[string]models.ComponentType {
	types := make(map[string]models.ComponentType)
	for _, line := range strings.Split(string(project), "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "[") {
			// Properties end at the first section header; later
			// sections reuse module names as keys.
			break
		}
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		switch strings.ToLower(key) {
		case "module":
			types[value] = models.TypeStdModule
		case "class":
			types[value] = models.TypeClassModule
		case "baseclass":
			types[value] = models.TypeMSForm
		case "document":
			name, _, _ := strings.Cut(value, "/")
			types[name] = models.TypeDocument
		}
	}
	return types
}

// moduleSource decompresses a module's source text. Bytes before the
// recorded offset are the host's performance cache and are skipped.
func moduleSource(streams *projectStreams, m dirModule) (string, error) {
	streamName := m.streamName
	if streamName == "" {
		streamName = m.name
	}
	data, ok := streams.modules[strings.ToLower(streamName)]
	if !ok {
		return "", fmt.Errorf("stream %q not found", streamName)
	}
	if int(m.offset) >= len(data) {
		return "", nil
	}
	src, err := DecompressContainer(data[m.offset:])
	if err != nil {
		return "", err
	}
	return decodeMBCS(src), nil
}

// countCodeLines counts source lines the way a host code module reports
// them: a trailing line break does not start a new line.
func countCodeLines(src string) int {
	if src == "" {
		return 0
	}
	n := strings.Count(src, "\n")
	if !strings.HasSuffix(src, "\n") {
		n++
	}
	return n
}

// decodeMBCS decodes a code-page string as Latin-1. Project names are
// ASCII in practice; the Unicode record variants take precedence when
// present.
func decodeMBCS(b []byte) string {
	r := make([]rune, len(b))
	for i, c := range b {
		r[i] = rune(c)
	}
	return string(r)
}

// decodeUTF16 decodes a UTF-16LE string record.
func decodeUTF16(b []byte) string {
	u := make([]uint16, 0, len(b)/2)
	for i := 0; i+1 < len(b); i += 2 {
		u = append(u, binary.LittleEndian.Uint16(b[i:]))
	}
	return strings.TrimRight(string(utf16.Decode(u)), "\x00")
}
