/*
Package ksrt registers and retrieves schemas against a Kafka Schema Registry.

For protobuf schemas it compiles the root file with protoc, recovers the
source text of every transitively imported file, and rebuilds the import
graph as nested schema references so each dependency is registered as a
named, versioned reference before the schema that depends on it.

Schema registry API: https://docs.confluent.io/platform/current/schema-registry/develop/api.html

Protobuf descriptors: https://protobuf.dev/programming-guides/techniques/#self-description
*/
package ksrt
