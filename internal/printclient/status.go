package printclient

import (
	"strconv"
	"strings"
)

// HostStatus is the decoded ~HS response: printer status flags plus the
// current label length and buffer counts.
type HostStatus struct {
	CommunicationSettings string
	PaperOut               bool
	PauseActive            bool
	LabelLengthDots        int
	FormatsInBuffer        int
	BufferFull             bool
	DiagnosticMode         bool
	PartialFormatInProgress bool
	CorruptRAM             bool
	TemperatureOK          bool
}

// ParseHostStatusStrict decodes a ~HS frame's comma-separated fields,
// requiring the full field count and rejecting anything it cannot parse.
func ParseHostStatusStrict(frame []byte) (HostStatus, error) {
	fields := strings.Split(string(frame), ",")
	if len(fields) != 10 {
		return HostStatus{}, wrap(ErrMalformedFrame, "parse_host_status",
			errWrongFieldCount(10, len(fields)))
	}
	var hs HostStatus
	hs.CommunicationSettings = fields[0]

	flags := []struct {
		dst *bool
		raw string
	}{
		{&hs.PaperOut, fields[1]},
		{&hs.PauseActive, fields[2]},
	}
	for _, f := range flags {
		v, err := strconv.ParseBool(f.raw)
		if err != nil {
			return HostStatus{}, wrap(ErrMalformedFrame, "parse_host_status", err)
		}
		*f.dst = v
	}

	n, err := strconv.Atoi(strings.TrimSpace(fields[3]))
	if err != nil {
		return HostStatus{}, wrap(ErrMalformedFrame, "parse_host_status", err)
	}
	hs.LabelLengthDots = n

	n, err = strconv.Atoi(strings.TrimSpace(fields[4]))
	if err != nil {
		return HostStatus{}, wrap(ErrMalformedFrame, "parse_host_status", err)
	}
	hs.FormatsInBuffer = n

	boolFields := []struct {
		dst *bool
		raw string
	}{
		{&hs.BufferFull, fields[5]},
		{&hs.DiagnosticMode, fields[6]},
		{&hs.PartialFormatInProgress, fields[7]},
		{&hs.CorruptRAM, fields[8]},
		{&hs.TemperatureOK, fields[9]},
	}
	for _, f := range boolFields {
		v, err := strconv.ParseBool(f.raw)
		if err != nil {
			return HostStatus{}, wrap(ErrMalformedFrame, "parse_host_status", err)
		}
		*f.dst = v
	}
	return hs, nil
}

// ParseHostStatusLenient decodes as many fields as it can, leaving the rest
// at their zero value rather than failing the whole parse. Used when a
// caller only needs a best-effort read (e.g. a progress UI) rather than a
// validated decode.
func ParseHostStatusLenient(frame []byte) HostStatus {
	fields := strings.Split(string(frame), ",")
	var hs HostStatus
	get := func(i int) (string, bool) {
		if i < len(fields) {
			return strings.TrimSpace(fields[i]), true
		}
		return "", false
	}
	if s, ok := get(0); ok {
		hs.CommunicationSettings = s
	}
	if s, ok := get(1); ok {
		hs.PaperOut, _ = strconv.ParseBool(s)
	}
	if s, ok := get(2); ok {
		hs.PauseActive, _ = strconv.ParseBool(s)
	}
	if s, ok := get(3); ok {
		hs.LabelLengthDots, _ = strconv.Atoi(s)
	}
	if s, ok := get(4); ok {
		hs.FormatsInBuffer, _ = strconv.Atoi(s)
	}
	if s, ok := get(5); ok {
		hs.BufferFull, _ = strconv.ParseBool(s)
	}
	if s, ok := get(6); ok {
		hs.DiagnosticMode, _ = strconv.ParseBool(s)
	}
	if s, ok := get(7); ok {
		hs.PartialFormatInProgress, _ = strconv.ParseBool(s)
	}
	if s, ok := get(8); ok {
		hs.CorruptRAM, _ = strconv.ParseBool(s)
	}
	if s, ok := get(9); ok {
		hs.TemperatureOK, _ = strconv.ParseBool(s)
	}
	return hs
}

// HostIdentification is the decoded ~HI response: model, firmware version,
// DPMM (dots per millimeter), and memory size.
type HostIdentification struct {
	Model       string
	Firmware    string
	DPMM        int
	MemoryBytes int
}

// ParseHostIdentificationStrict decodes a ~HI frame's comma-separated
// fields, requiring all four and rejecting malformed numeric fields.
func ParseHostIdentificationStrict(frame []byte) (HostIdentification, error) {
	fields := strings.Split(string(frame), ",")
	if len(fields) != 4 {
		return HostIdentification{}, wrap(ErrMalformedFrame, "parse_host_identification",
			errWrongFieldCount(4, len(fields)))
	}
	dpmm, err := strconv.Atoi(strings.TrimSpace(fields[2]))
	if err != nil {
		return HostIdentification{}, wrap(ErrMalformedFrame, "parse_host_identification", err)
	}
	mem, err := strconv.Atoi(strings.TrimSpace(fields[3]))
	if err != nil {
		return HostIdentification{}, wrap(ErrMalformedFrame, "parse_host_identification", err)
	}
	return HostIdentification{
		Model:       fields[0],
		Firmware:    fields[1],
		DPMM:        dpmm,
		MemoryBytes: mem,
	}, nil
}

// ParseHostIdentificationLenient decodes whatever fields are present,
// leaving the rest at their zero value.
func ParseHostIdentificationLenient(frame []byte) HostIdentification {
	fields := strings.Split(string(frame), ",")
	var hi HostIdentification
	if len(fields) > 0 {
		hi.Model = strings.TrimSpace(fields[0])
	}
	if len(fields) > 1 {
		hi.Firmware = strings.TrimSpace(fields[1])
	}
	if len(fields) > 2 {
		hi.DPMM, _ = strconv.Atoi(strings.TrimSpace(fields[2]))
	}
	if len(fields) > 3 {
		hi.MemoryBytes, _ = strconv.Atoi(strings.TrimSpace(fields[3]))
	}
	return hi
}

type fieldCountError struct {
	want, got int
}

func (e fieldCountError) Error() string {
	return "expected " + strconv.Itoa(e.want) + " fields, got " + strconv.Itoa(e.got)
}

func errWrongFieldCount(want, got int) error {
	return fieldCountError{want: want, got: got}
}
