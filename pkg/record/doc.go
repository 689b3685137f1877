/*
Package record defines the two record shapes exchanged between a harness and an
operation, and their strict JSON codec.

	indexed    in:  data_map, full_content, content_index
	           out: data_map, content_index, new_content, error_message

	remaining  in:  data_map, full_content, remaining_content
	           out: data_map, full_content

The shape of an input is picked from its keys (content_index or
remaining_content) and the key set must then match exactly. data_map is never
interpreted; it is cloned into the working record so a transformation that does
not touch it hands it back unchanged.
*/
package record
