// Package fields models serializer field descriptors: the input side of the
// schema mapper. Each field kind is a struct embedding Base, so optional
// attributes are explicit (nil pointers or nil Text) instead of being probed
// at runtime. Labels and help texts are Text values resolved lazily, which
// lets translatable strings follow the language chosen at mapping time.
package fields
