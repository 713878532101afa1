package jsonrpc2

import (
	"log/slog"
	"strconv"

	"go.uber.org/zap/zapcore"
)

// Messages, ids, error objects and validation errors render as structured
// fields with both log/slog and zap:
//
//	log.Debug("received", slog.Any("message", req))
//	zlog.Debug("received", zap.Object("message", req))

func (id ID) LogValue() slog.Value {
	return slog.StringValue(id.String())
}

func (p Params) LogValue() slog.Value {
	if p.IsZero() {
		return slog.StringValue("")
	}
	return slog.StringValue(string(p.Raw()))
}

func (r Request) LogValue() slog.Value {
	attrs := []slog.Attr{slog.String("method", r.method)}
	if !r.id.IsZero() {
		attrs = append(attrs, slog.Any("id", r.id))
	}
	if !r.params.IsZero() {
		attrs = append(attrs, slog.Any("params", r.params))
	}
	return slog.GroupValue(attrs...)
}

func (r Request) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	enc.AddString("method", r.method)
	if !r.id.IsZero() {
		enc.AddString("id", r.id.String())
	}
	if !r.params.IsZero() {
		enc.AddByteString("params", r.params.Raw())
	}
	return nil
}

func (n Notification) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("method", n.method),
		slog.Any("params", n.params),
	)
}

func (n Notification) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	enc.AddString("method", n.method)
	enc.AddByteString("params", n.params.Raw())
	return nil
}

func (b RequestBatch) LogValue() slog.Value {
	attrs := make([]slog.Attr, len(b.entries))
	for i, e := range b.entries {
		attrs[i] = slog.Any(strconv.Itoa(i), e)
	}
	return slog.GroupValue(attrs...)
}

func (b RequestBatch) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	return enc.AddArray("entries", zapcore.ArrayMarshalerFunc(func(ae zapcore.ArrayEncoder) error {
		for _, e := range b.entries {
			om, ok := e.(zapcore.ObjectMarshaler)
			if !ok {
				continue
			}
			if err := ae.AppendObject(om); err != nil {
				return err
			}
		}
		return nil
	}))
}

func (e ResponseError) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.Int("code", e.code),
		slog.String("message", e.message),
	}
	if e.data != nil {
		attrs = append(attrs, slog.String("data", string(e.data)))
	}
	return slog.GroupValue(attrs...)
}

func (e ResponseError) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	enc.AddInt("code", e.code)
	enc.AddString("message", e.message)
	if e.data != nil {
		enc.AddByteString("data", e.data)
	}
	return nil
}

func (r Response) LogValue() slog.Value {
	attrs := []slog.Attr{slog.Any("id", r.id)}
	if r.err != nil {
		attrs = append(attrs, slog.Any("error", *r.err))
	} else {
		attrs = append(attrs, slog.String("result", string(r.result)))
	}
	return slog.GroupValue(attrs...)
}

func (r Response) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	enc.AddString("id", r.id.String())
	if r.err != nil {
		return enc.AddObject("error", *r.err)
	}
	enc.AddByteString("result", r.result)
	return nil
}

func (b ResponseBatch) LogValue() slog.Value {
	attrs := make([]slog.Attr, len(b.responses))
	for i, r := range b.responses {
		attrs[i] = slog.Any(strconv.Itoa(i), r)
	}
	return slog.GroupValue(attrs...)
}

func (b ResponseBatch) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	return enc.AddArray("responses", zapcore.ArrayMarshalerFunc(func(ae zapcore.ArrayEncoder) error {
		for _, r := range b.responses {
			if err := ae.AppendObject(r); err != nil {
				return err
			}
		}
		return nil
	}))
}

func (e ValidationError) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	enc.AddString("path", e.Path)
	enc.AddString("reason", e.Reason)
	return nil
}

func (e ValidationErrors) MarshalLogArray(enc zapcore.ArrayEncoder) error {
	for _, ve := range e {
		if err := enc.AppendObject(ve); err != nil {
			return err
		}
	}
	return nil
}

func (e ValidationErrors) LogValue() slog.Value {
	attrs := make([]slog.Attr, len(e))
	for i, ve := range e {
		path := ve.Path
		if path == "" {
			path = "/"
		}
		attrs[i] = slog.String(path, ve.Reason)
	}
	return slog.GroupValue(attrs...)
}
